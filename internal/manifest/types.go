package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/specialistvlad/gridsheet/internal/sheet"
)

// Manifest is the decoded, validated content of one or more HCL files.
type Manifest struct {
	// Language is nil when no file sets it.
	Language *messages.Language
	Cells    []Cell
}

// Cell is one cell block.
type Cell struct {
	At       cellref.Coord
	Formula  string
	Override sheet.TypeOverride
	// DefRange points at the block header, for diagnostics.
	DefRange hcl.Range
}

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Sheet *sheetBlock  `hcl:"sheet,block"`
	Cells []*cellBlock `hcl:"cell,block"`
}

type sheetBlock struct {
	Language *string `hcl:"language,optional"`
}

type cellBlock struct {
	Address  string         `hcl:"address,label"`
	Formula  hcl.Expression `hcl:"formula,optional"`
	Type     *string        `hcl:"type,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}
