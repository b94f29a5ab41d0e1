package sheet

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/value"
)

const (
	// FormulaLength is the longest formula source a cell keeps, in bytes.
	FormulaLength = 70
	// VisibleTextLength is the width of the value line; longer display text
	// can be scrolled.
	VisibleTextLength = 70
)

// TypeOverride forces how other formulas interpret a cell's display text.
type TypeOverride uint8

const (
	Auto TypeOverride = iota
	ForceInt
	ForceFloat
	ForceText
	numOverrides
)

var overrideNames = [numOverrides]string{"auto", "int", "float", "text"}

func (t TypeOverride) String() string {
	if t < numOverrides {
		return overrideNames[t]
	}
	return fmt.Sprintf("TypeOverride(%d)", uint8(t))
}

// Valid reports whether t is one of the four overrides.
func (t TypeOverride) Valid() bool { return t < numOverrides }

// Next returns the override that follows t in the Tab cycle.
func (t TypeOverride) Next() TypeOverride { return (t + 1) % numOverrides }

// Tag returns the type tag a non-error cell with this override shows.
func (t TypeOverride) Tag() Tag {
	switch t {
	case ForceInt:
		return TagInt
	case ForceFloat:
		return TagFloat
	case ForceText:
		return TagText
	}
	return TagAuto
}

// ParseTypeOverride accepts the names printed by String, case-insensitively.
func ParseTypeOverride(raw string) (TypeOverride, error) {
	for i, name := range overrideNames {
		if strings.EqualFold(raw, name) {
			return TypeOverride(i), nil
		}
	}
	return Auto, fmt.Errorf("unknown cell type %q (want auto, int, float or text)", raw)
}

// Tag is the one-letter type marker shown next to a cell.
type Tag byte

const (
	TagAuto  Tag = '?'
	TagInt   Tag = 'I'
	TagFloat Tag = 'F'
	TagText  Tag = 'T'
	TagError Tag = 'E'
)

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	switch t {
	case TagAuto, TagInt, TagFloat, TagText, TagError:
		return true
	}
	return false
}

func (t Tag) String() string { return string(rune(t)) }

// Cell is a snapshot of one grid slot.
type Cell struct {
	// Formula is the raw source the user entered.
	Formula string
	// Text is the cached display text of the last evaluation.
	Text string
	// Override is the user-selected type override.
	Override TypeOverride
	// Tag is Override's tag, or TagError when the last value was an error.
	Tag Tag
	// Code is the last error code; meaningful only when Tag is TagError.
	Code value.ErrorCode
	// Scroll is the value line offset. The evaluator ignores it.
	Scroll int
}

// Record is the persisted form of a non-empty cell.
type Record struct {
	At       cellref.Coord
	Tag      Tag
	Override TypeOverride
	Scroll   int
	Formula  string
}

// Update describes a cell that was just re-rendered.
type Update struct {
	At      cellref.Coord
	Formula string
	Text    string
	Tag     Tag
	Code    value.ErrorCode
	// Manual is set for the cell whose edit started the evaluation.
	Manual bool
}

// Observer is notified after every re-render. It runs while the sheet is
// locked and must not call back into the Sheet.
type Observer interface {
	CellUpdated(u Update)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(u Update)

// CellUpdated calls f(u).
func (f ObserverFunc) CellUpdated(u Update) { f(u) }
