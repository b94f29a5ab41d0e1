package sheet

import (
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/value"
)

// Cell returns a snapshot of the cell at `at`. Coordinates outside the grid
// yield an empty Auto cell.
func (s *Sheet) Cell(at cellref.Coord) Cell {
	if !at.Valid() {
		return Cell{Tag: TagAuto}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cell(at)
}

// Text returns the cached display text of a cell.
func (s *Sheet) Text(at cellref.Coord) string {
	return s.Cell(at).Text
}

// Type returns the type tag of a cell.
func (s *Sheet) Type(at cellref.Coord) Tag {
	return s.Cell(at).Tag
}

// ErrorCode returns the error code of a cell and whether the cell currently
// shows an error.
func (s *Sheet) ErrorCode(at cellref.Coord) (value.ErrorCode, bool) {
	c := s.Cell(at)
	return c.Code, c.Tag == TagError
}

// Formula returns the stored formula source of a cell.
func (s *Sheet) Formula(at cellref.Coord) string {
	return s.Cell(at).Formula
}

// Override returns the type override of a cell.
func (s *Sheet) Override(at cellref.Coord) TypeOverride {
	return s.Cell(at).Override
}

// Dependents returns the cells that read `at`, in registration order.
func (s *Sheet) Dependents(at cellref.Coord) []cellref.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Dependents(at)
}

// Sources returns the cells `at` read during its last manual evaluation.
func (s *Sheet) Sources(at cellref.Coord) []cellref.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Sources(at)
}

// CheckCycles reports whether the dependency edges contain a cycle.
func (s *Sheet) CheckCycles() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.DetectCycles()
}

// EdgeCount returns the number of registered dependency edges.
func (s *Sheet) EdgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Len()
}

// SetScroll sets the value line offset of a cell, clamped to its text.
func (s *Sheet) SetScroll(at cellref.Coord, offset int) {
	if !at.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cell(at)
	c.Scroll = max(offset, 0)
	s.clampScroll(c)
}

// Records lists the cells worth persisting, column by column: those with a
// formula or a type tag other than Auto.
func (s *Sheet) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []Record
	for _, at := range cellref.All() {
		c := s.cell(at)
		if c.Formula == "" && c.Tag == TagAuto {
			continue
		}
		records = append(records, Record{
			At:       at,
			Tag:      c.Tag,
			Override: c.Override,
			Scroll:   c.Scroll,
			Formula:  c.Formula,
		})
	}
	return records
}
