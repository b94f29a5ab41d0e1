package sheet

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/depgraph"
	"github.com/specialistvlad/gridsheet/internal/formula"
	"github.com/specialistvlad/gridsheet/internal/funcs"
	"github.com/specialistvlad/gridsheet/internal/messages"
)

// Sheet is the fixed grid of cells together with their dependency graph.
// All methods are safe for concurrent use.
type Sheet struct {
	mu sync.Mutex

	cells [cellref.Size][cellref.Size]Cell // [col][row]
	graph *depgraph.Graph
	eval  *formula.Evaluator

	registry  *funcs.Registry
	lang      messages.Language
	strict    bool
	observers []Observer
}

// New creates an empty sheet: every cell has an empty formula, Auto type and
// no edges.
func New(opts ...Option) *Sheet {
	s := &Sheet{graph: depgraph.New()}
	for _, opt := range opts {
		opt(s)
	}
	s.eval = formula.New(s.registry)
	for col := range s.cells {
		for row := range s.cells[col] {
			s.cells[col][row].Tag = TagAuto
		}
	}
	return s
}

func (s *Sheet) cell(at cellref.Coord) *Cell {
	return &s.cells[at.Col][at.Row]
}

func checkCoord(at cellref.Coord) error {
	if !at.Valid() {
		return fmt.Errorf("cell %s is outside the %dx%d grid", at, cellref.Size, cellref.Size)
	}
	return nil
}

// clampFormula cuts src to FormulaLength bytes without splitting a rune.
func clampFormula(src string) string {
	if len(src) <= FormulaLength {
		return src
	}
	end := FormulaLength
	for end > 0 && !utf8.RuneStart(src[end]) {
		end--
	}
	return src[:end]
}

// Evaluate stores src as the formula of the cell at `at`, evaluates it and
// recomputes everything that depends on the cell. When manual is set the
// cell's dependency edges are rebuilt from the formula; otherwise they are
// left untouched.
func (s *Sheet) Evaluate(ctx context.Context, at cellref.Coord, src string, manual bool) error {
	if err := checkCoord(at); err != nil {
		return err
	}
	if clamped := clampFormula(src); clamped != src {
		ctxlog.FromContext(ctx).Warn("Formula truncated.", "cell", at, "limit", FormulaLength)
		src = clamped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.update(ctx, at, src, manual, newPropagation(at, s.strict))
	return nil
}

// Edit is a manual evaluation, the way a user entering a formula triggers it.
func (s *Sheet) Edit(ctx context.Context, at cellref.Coord, src string) error {
	return s.Evaluate(ctx, at, src, true)
}

// Restore replays a persisted record: it sets the override and scroll
// offset of the cell and evaluates the formula as a manual edit. Loaders use
// it; unlike SetOverride it also applies to cells showing an error. The
// record's tag is recomputed, not copied.
func (s *Sheet) Restore(ctx context.Context, r Record) error {
	if err := checkCoord(r.At); err != nil {
		return err
	}
	if !r.Override.Valid() {
		return fmt.Errorf("cell %s: invalid type override %d", r.At, r.Override)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cell(r.At)
	c.Override = r.Override
	c.Tag = r.Override.Tag()
	c.Scroll = max(r.Scroll, 0)
	s.update(ctx, r.At, clampFormula(r.Formula), true, newPropagation(r.At, s.strict))
	return nil
}

// SetOverride changes the type override of a cell and re-runs its formula.
// Cells showing an error keep their override; it reports whether the
// override was applied.
func (s *Sheet) SetOverride(ctx context.Context, at cellref.Coord, t TypeOverride) (bool, error) {
	if err := checkCoord(at); err != nil {
		return false, err
	}
	if !t.Valid() {
		return false, fmt.Errorf("cell %s: invalid type override %d", at, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setOverride(ctx, at, t), nil
}

// CycleType advances the override of a cell to the next one (Auto, Int,
// Float, Text, Auto, ...) under the same rules as SetOverride.
func (s *Sheet) CycleType(ctx context.Context, at cellref.Coord) (bool, error) {
	if err := checkCoord(at); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setOverride(ctx, at, s.cell(at).Override.Next()), nil
}

func (s *Sheet) setOverride(ctx context.Context, at cellref.Coord, t TypeOverride) bool {
	c := s.cell(at)
	if c.Tag == TagError {
		ctxlog.FromContext(ctx).Debug("Type override refused for error cell.", "cell", at)
		return false
	}
	c.Override = t
	c.Tag = t.Tag()
	s.update(ctx, at, c.Formula, true, newPropagation(at, s.strict))
	return true
}

// SetLanguage switches the language of error texts and re-renders every cell
// that currently shows an error.
func (s *Sheet) SetLanguage(ctx context.Context, lang messages.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lang == lang {
		return
	}
	s.lang = lang
	rendered := 0
	for _, at := range cellref.All() {
		c := s.cell(at)
		if c.Tag != TagError {
			continue
		}
		c.Text = messages.Error(lang, c.Code)
		s.notify(at, false)
		rendered++
	}
	ctxlog.FromContext(ctx).Debug("Language switched.", "language", lang, "error_cells", rendered)
}

// Language returns the current language of error texts.
func (s *Sheet) Language() messages.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}
