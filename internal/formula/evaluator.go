package formula

import (
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/funcs"
	"github.com/specialistvlad/gridsheet/internal/value"
)

// Marker is the first character of a formula.
const Marker = '='

// Reader supplies the value of a referenced cell. The evaluator has already
// rejected self references and out-of-grid addresses by the time ReadCell is
// called; implementations record the dependency and interpret the cell.
type Reader interface {
	ReadCell(at cellref.Coord) value.Value
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(at cellref.Coord) value.Value

// ReadCell calls f(at).
func (f ReaderFunc) ReadCell(at cellref.Coord) value.Value { return f(at) }

// Evaluator turns cell source into values using a function registry.
type Evaluator struct {
	funcs *funcs.Registry
}

// New creates an Evaluator. A nil registry selects funcs.Default().
func New(reg *funcs.Registry) *Evaluator {
	if reg == nil {
		reg = funcs.Default()
	}
	return &Evaluator{funcs: reg}
}

// IsFormula reports whether src is parsed with the formula grammar.
func IsFormula(src string) bool {
	return len(src) > 0 && src[0] == Marker
}

// Evaluate computes the final value of the cell at self whose source is src.
// Non-formula source is returned as Text. The result is never a Range and
// never the internal Empty sentinel.
func (e *Evaluator) Evaluate(src string, self cellref.Coord, r Reader) value.Value {
	if !IsFormula(src) {
		return value.Text(src)
	}
	p := &parser{src: src, pos: 1, self: self, reader: r, funcs: e.funcs}
	v := p.expr()
	if p.pos < len(p.src) {
		return value.Error(value.ErrGeneral)
	}
	return finalize(v)
}

func finalize(v value.Value) value.Value {
	switch {
	case v.Kind() == value.KindRange:
		return value.Error(value.ErrBadArg)
	case v.IsError():
		return value.Error(v.Code().Surfaced())
	}
	return v
}

// InferLiteral interprets cached cell text in the in-cell context: a string
// that is entirely a number literal becomes Int or Float, anything else is
// Text.
func InferLiteral(text string) value.Value {
	if v, ok := value.ParseNumber(text); ok {
		return v
	}
	return value.Text(text)
}
