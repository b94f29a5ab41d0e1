package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/messages"
)

// Mode selects what Run does after the sheet is loaded.
type Mode int

const (
	// ModeInteractive starts the terminal UI.
	ModeInteractive Mode = iota
	// ModeHeadless prints the non-empty cells and exits.
	ModeHeadless
	// ModeCheck reports dependency cycles and error cells.
	ModeCheck
	// ModeExport writes the sheet as an HCL manifest.
	ModeExport
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeHeadless:
		return "headless"
	case ModeCheck:
		return "check"
	case ModeExport:
		return "export"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// wholeGrid is the report range when Config.Cells is empty.
var wholeGrid = cellref.NewRange(cellref.MustParse("A1"), cellref.MustParse("Z26"))

// StdoutPath makes export write to the output writer instead of a file.
const StdoutPath = "-"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// FilePath is a sheet file, an .hcl manifest or a directory of manifests.
	// Empty starts with a blank sheet.
	FilePath string
	Language string

	LogFormat string
	LogLevel  string
	// LogFile receives the log instead of the log writer when set.
	LogFile string

	Mode       Mode
	ExportPath string
	// Cells limits the headless and check reports to a range such as
	// `A1:C10`. Empty means the whole grid.
	Cells string

	MirrorURL       string
	MirrorNamespace string
	MirrorInsecure  bool
	StrictCycles    bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Language == "" {
		cfg.Language = messages.English.String()
	}
	if _, err := messages.ParseLanguage(cfg.Language); err != nil {
		return nil, err
	}
	if cfg.Mode < ModeInteractive || cfg.Mode > ModeExport {
		return nil, fmt.Errorf("unknown mode %d", int(cfg.Mode))
	}
	if cfg.Mode == ModeCheck && cfg.FilePath == "" {
		return nil, errors.New("check mode needs a sheet file")
	}
	if cfg.Mode == ModeExport && cfg.ExportPath == "" {
		cfg.ExportPath = StdoutPath
	}
	if cfg.Cells != "" {
		if _, err := cellref.ParseRange(cfg.Cells); err != nil {
			return nil, fmt.Errorf("invalid cell range: %w", err)
		}
	}
	if cfg.MirrorURL == "" && cfg.MirrorNamespace != "" {
		return nil, errors.New("mirror namespace given without a mirror URL")
	}
	if cfg.MirrorNamespace == "" {
		cfg.MirrorNamespace = "/"
	}
	return &cfg, nil
}

func (c *Config) language() messages.Language {
	lang, err := messages.ParseLanguage(c.Language)
	if err != nil {
		return messages.English
	}
	return lang
}

// cellRange is the part of the grid the reports cover.
func (c *Config) cellRange() cellref.Range {
	if c.Cells == "" {
		return wholeGrid
	}
	r, err := cellref.ParseRange(c.Cells)
	if err != nil {
		return wholeGrid
	}
	return r
}
