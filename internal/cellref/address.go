// internal/cellref/address.go
package cellref

import (
	"fmt"
	"strconv"
)

// ColumnName returns the letter used for a 0-based column index.
func ColumnName(col int) string {
	if col < 0 || col >= Size {
		return "?"
	}
	return string(rune('A' + col))
}

// String serializes the coordinate into its canonical `A1` form.
// Coordinates outside the grid are printed as a raw pair.
func (c Coord) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
	}
	return ColumnName(c.Col) + strconv.Itoa(c.Row+1)
}

// NewRange builds a normalized range from two corners given in any order.
func NewRange(a, b Coord) Range {
	return Range{
		From: Coord{Col: min(a.Col, b.Col), Row: min(a.Row, b.Row)},
		To:   Coord{Col: max(a.Col, b.Col), Row: max(a.Row, b.Row)},
	}
}

// String serializes the range as `A1:B2`.
func (r Range) String() string {
	return r.From.String() + ":" + r.To.String()
}

// Contains reports whether c lies inside the range.
func (r Range) Contains(c Coord) bool {
	return c.Col >= r.From.Col && c.Col <= r.To.Col &&
		c.Row >= r.From.Row && c.Row <= r.To.Row
}

// Cells lists the members of the range in reduction order: columns
// ascending in the outer loop, rows ascending in the inner one.
func (r Range) Cells() []Coord {
	cells := make([]Coord, 0, (r.To.Col-r.From.Col+1)*(r.To.Row-r.From.Row+1))
	for col := r.From.Col; col <= r.To.Col; col++ {
		for row := r.From.Row; row <= r.To.Row; row++ {
			cells = append(cells, Coord{Col: col, Row: row})
		}
	}
	return cells
}

// All lists every cell of the grid in column-major order, the order in
// which sheets are persisted.
func All() []Coord {
	return NewRange(Coord{}, Coord{Col: Size - 1, Row: Size - 1}).Cells()
}
