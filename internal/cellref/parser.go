// internal/cellref/parser.go
package cellref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// addressRegex matches a single cell address, e.g. `A1` or `Z26`.
var addressRegex = regexp.MustCompile(`^([A-Z])([0-9]{1,2})$`)

// Parse creates a Coord from its canonical string representation.
func Parse(raw string) (Coord, error) {
	if raw == "" {
		return Coord{}, fmt.Errorf("cell address cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Coord{}, fmt.Errorf("invalid cell address: %q", raw)
	}

	row, err := strconv.Atoi(matches[2])
	if err != nil {
		// Unreachable due to regex `[0-9]{1,2}`
		return Coord{}, fmt.Errorf("internal error parsing row: %w", err)
	}

	c := Coord{Col: int(matches[1][0] - 'A'), Row: row - 1}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("cell address %q is outside the %dx%d grid", raw, Size, Size)
	}
	return c, nil
}

// ParseRange parses `A1:B2` or a single address, which yields a
// one-cell range.
func ParseRange(raw string) (Range, error) {
	first, second, found := strings.Cut(raw, ":")
	a, err := Parse(first)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Range{From: a, To: a}, nil
	}
	b, err := Parse(second)
	if err != nil {
		return Range{}, err
	}
	return NewRange(a, b), nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// static tables.
func MustParse(raw string) Coord {
	c, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return c
}
