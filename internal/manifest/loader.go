package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/fsutil"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Load parses every .hcl file found under paths (directories are walked)
// and merges them, in order, into one Manifest.
func Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "files", files)

	parser := hclparse.NewParser()
	m := &Manifest{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := m.decode(ctx, hclFile); err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
	}

	logger.Debug("Manifest loading complete.", "files", len(files), "cells", len(m.Cells))
	return m, nil
}

// Parse decodes a single manifest held in memory. filename is only used in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*Manifest, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	m := &Manifest{}
	if err := m.decode(ctx, hclFile); err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return m, nil
}

func (m *Manifest) decode(ctx context.Context, file *hcl.File) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return diags
	}

	if root.Sheet != nil && root.Sheet.Language != nil {
		lang, err := messages.ParseLanguage(*root.Sheet.Language)
		if err != nil {
			return fmt.Errorf("sheet block: %w", err)
		}
		m.Language = &lang
	}

	seen := make(map[cellref.Coord]hcl.Range)
	for _, block := range root.Cells {
		cell, err := translateCell(block)
		if err != nil {
			return fmt.Errorf("%s: %w", block.DefRange, err)
		}
		if prev, dup := seen[cell.At]; dup {
			ctxlog.FromContext(ctx).Warn("Cell defined more than once; the last definition wins.",
				"cell", cell.At, "first", prev.String(), "again", block.DefRange.String())
		}
		seen[cell.At] = block.DefRange
		m.Cells = append(m.Cells, cell)
	}
	return nil
}

func translateCell(block *cellBlock) (Cell, error) {
	at, err := cellref.Parse(block.Address)
	if err != nil {
		return Cell{}, err
	}
	cell := Cell{At: at, DefRange: block.DefRange}

	if block.Type != nil {
		if cell.Override, err = sheet.ParseTypeOverride(*block.Type); err != nil {
			return Cell{}, fmt.Errorf("cell %s: %w", at, err)
		}
	}

	if block.Formula != nil {
		val, diags := block.Formula.Value(nil)
		if diags.HasErrors() {
			return Cell{}, fmt.Errorf("cell %s: %w", at, diags)
		}
		if cell.Formula, err = formulaString(val); err != nil {
			return Cell{}, fmt.Errorf("cell %s: formula: %w", at, err)
		}
	}
	if len(cell.Formula) > sheet.FormulaLength {
		return Cell{}, fmt.Errorf("cell %s: formula is longer than %d bytes", at, sheet.FormulaLength)
	}
	return cell, nil
}

// formulaString converts a literal attribute to the text a user would type:
// numbers and bools become their canonical string form, null is empty.
func formulaString(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot use %s as a formula: %w", val.Type().FriendlyName(), err)
	}
	var out string
	if err := gocty.FromCtyValue(str, &out); err != nil {
		return "", err
	}
	return out, nil
}

// Apply replays the manifest into s: the language first, then every cell as
// a manual edit in document order.
func Apply(ctx context.Context, m *Manifest, s *sheet.Sheet) error {
	logger := ctxlog.FromContext(ctx)

	if m.Language != nil {
		s.SetLanguage(ctx, *m.Language)
	}
	for _, c := range m.Cells {
		rec := sheet.Record{At: c.At, Override: c.Override, Formula: c.Formula}
		if err := s.Restore(ctx, rec); err != nil {
			return fmt.Errorf("%s: %w", c.DefRange, err)
		}
	}
	logger.Info("Manifest applied.", "cells", len(m.Cells))
	return nil
}
