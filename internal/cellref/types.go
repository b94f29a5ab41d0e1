// internal/cellref/types.go
package cellref

// Size is the number of columns and rows of the grid.
const Size = 26

// Coord identifies a single cell. Col and Row are 0-based.
type Coord struct {
	Col int
	Row int
}

// At is a shorthand constructor for a coordinate.
func At(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// Valid reports whether the coordinate lies inside the grid.
func (c Coord) Valid() bool {
	return c.Col >= 0 && c.Col < Size && c.Row >= 0 && c.Row < Size
}

// Range is a rectangular span of cells, inclusive on both corners.
// Values produced by NewRange are always normalized.
type Range struct {
	From Coord
	To   Coord
}
