package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/manifest"
	"github.com/specialistvlad/gridsheet/internal/mirror"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/specialistvlad/gridsheet/internal/tui"
	"github.com/specialistvlad/gridsheet/internal/wsfile"
)

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	opts := []sheet.Option{sheet.WithLanguage(a.config.language())}
	if a.config.StrictCycles {
		opts = append(opts, sheet.WithStrictCycles())
	}
	if a.config.MirrorURL != "" {
		pub, err := mirror.Connect(ctx, mirror.Options{
			URL:                a.config.MirrorURL,
			Namespace:          a.config.MirrorNamespace,
			InsecureSkipVerify: a.config.MirrorInsecure,
		})
		if err != nil {
			return fmt.Errorf("failed to start mirror: %w", err)
		}
		a.closer = append(a.closer, pub)
		opts = append(opts, sheet.WithObserver(pub))
	}
	a.sheet = sheet.New(opts...)

	if err := a.load(ctx); err != nil {
		return err
	}

	a.logger.Debug("Dispatching.", "mode", a.config.Mode)
	switch a.config.Mode {
	case ModeCheck:
		return a.check()
	case ModeExport:
		return a.export()
	case ModeHeadless:
		return a.printCells()
	}

	model := tui.New(ctx, a.sheet, tui.Options{Path: a.savePath(), Cursor: a.cursor})
	if err := tui.Run(ctx, model); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// isManifest reports whether path names HCL input rather than a sheet file.
func isManifest(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (a *App) load(ctx context.Context) error {
	path := a.config.FilePath
	if path == "" {
		a.logger.Info("Starting with an empty sheet.")
		return nil
	}

	if isManifest(path) {
		m, err := manifest.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
		if err := manifest.Apply(ctx, m, a.sheet); err != nil {
			return fmt.Errorf("failed to apply manifest: %w", err)
		}
		return nil
	}

	cursor, err := wsfile.LoadFile(ctx, path, a.sheet)
	if errors.Is(err, fs.ErrNotExist) && a.config.Mode == ModeInteractive {
		a.logger.Info("Sheet file does not exist yet; starting empty.", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load sheet: %w", err)
	}
	a.cursor = cursor
	a.logger.Info("Sheet loaded.", "path", path, "cells", len(a.sheet.Records()))
	return nil
}

// savePath is the file name the save dialog offers first.
func (a *App) savePath() string {
	if a.config.FilePath == "" || isManifest(a.config.FilePath) {
		return ""
	}
	return a.config.FilePath
}

// check reports every cell showing an error and fails when the dependency
// edges contain a cycle.
func (a *App) check() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	cells := a.config.cellRange()
	errorCells := 0
	for _, at := range cellref.All() {
		if !cells.Contains(at) {
			continue
		}
		code, ok := a.sheet.ErrorCode(at)
		if !ok {
			continue
		}
		errorCells++
		fmt.Fprintf(tw, "%s\t%s\t%s\n", at, code, a.sheet.Text(at))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := a.sheet.CheckCycles(); err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}
	edges := a.sheet.EdgeCount()
	a.logger.Info("Dependency check passed.", "error_cells", errorCells, "edges", edges)
	fmt.Fprintf(a.outW, "no dependency cycles, %d dependency edge(s), %d error cell(s)\n", edges, errorCells)
	return nil
}

func (a *App) export() error {
	if a.config.ExportPath == StdoutPath {
		return manifest.Export(a.outW, a.sheet)
	}

	f, err := os.Create(a.config.ExportPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := manifest.Export(f, a.sheet); err != nil {
		f.Close()
		return fmt.Errorf("failed to export manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to export manifest: %w", err)
	}
	a.logger.Info("Manifest exported.", "path", a.config.ExportPath)
	return nil
}

// printCells writes one line per non-empty cell: address, type tag, formula
// and displayed text.
func (a *App) printCells() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tTYPE\tFORMULA\tVALUE")
	cells := a.config.cellRange()
	for _, r := range a.sheet.Records() {
		if !cells.Contains(r.At) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.At, r.Tag, r.Formula, a.sheet.Text(r.At))
	}
	return tw.Flush()
}
