package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridsheet/internal/app"
	"github.com/specialistvlad/gridsheet/internal/funcs"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridsheet", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridsheet - A 26x26 terminal spreadsheet.

Usage:
  gridsheet [options] [FILE]

Arguments:
  FILE
    A sheet file to open and save, or an .hcl manifest (file or directory)
    to import. Without FILE an empty sheet is opened.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nFunctions:\n  %s\n", strings.Join(funcs.Default().Names(), " "))
	}

	fileFlag := flagSet.String("file", "", "Path to the sheet file or HCL manifest.")
	fFlag := flagSet.String("f", "", "Path to the sheet file or HCL manifest (shorthand).")
	langFlag := flagSet.String("lang", "en", "Language of error texts: 'en' or 'pl' (any matching BCP 47 tag).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Append the log to this file. The interactive UI logs nowhere otherwise.")
	headlessFlag := flagSet.Bool("headless", false, "Print the non-empty cells instead of starting the UI.")
	checkFlag := flagSet.Bool("check", false, "Report error cells and fail on dependency cycles.")
	cellsFlag := flagSet.String("cells", "", "Limit the -headless and -check reports to a range such as 'A1:C10'.")
	exportFlag := flagSet.String("export", "", "Write the sheet as an HCL manifest to this path ('-' for stdout).")
	mirrorURLFlag := flagSet.String("mirror-url", "", "Publish cell updates to this socket.io server.")
	mirrorNSFlag := flagSet.String("mirror-namespace", "", "socket.io namespace for the mirror.")
	mirrorInsecureFlag := flagSet.Bool("mirror-insecure", false, "Skip TLS verification for the mirror.")
	strictFlag := flagSet.Bool("strict-cycles", false, "Mark every cell revisited during propagation as a cycle.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *fileFlag != "" {
		path = *fileFlag
	} else if *fFlag != "" {
		path = *fFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("too many arguments: %s", strings.Join(flagSet.Args()[1:], " "))
	}
	slog.Debug("Sheet path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	mode := app.ModeInteractive
	selected := 0
	if *headlessFlag {
		mode = app.ModeHeadless
		selected++
	}
	if *checkFlag {
		mode = app.ModeCheck
		selected++
	}
	if *exportFlag != "" {
		mode = app.ModeExport
		selected++
	}
	if selected > 1 {
		return nil, false, usageError("-headless, -check and -export are mutually exclusive")
	}
	slog.Debug("CLI parameter validation complete.", "mode", mode)

	config, err := app.NewConfig(app.Config{
		FilePath:        path,
		Language:        *langFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		LogFile:         *logFileFlag,
		Mode:            mode,
		ExportPath:      *exportFlag,
		Cells:           strings.ToUpper(*cellsFlag),
		MirrorURL:       *mirrorURLFlag,
		MirrorNamespace: *mirrorNSFlag,
		MirrorInsecure:  *mirrorInsecureFlag,
		StrictCycles:    *strictFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
