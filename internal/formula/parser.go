package formula

import (
	"strings"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/funcs"
	"github.com/specialistvlad/gridsheet/internal/value"
)

// parser is a cursor over one formula. Each method consumes what it
// recognizes and leaves pos on the first character it did not.
type parser struct {
	src    string
	pos    int
	self   cellref.Coord
	reader Reader
	funcs  *funcs.Registry
}

var (
	errEmpty   = value.Error(value.ErrEmpty)
	errGeneral = value.Error(value.ErrGeneral)
)

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// expr evaluates one argument-level expression. Its extent is decided by
// the token up to the next '(', ')' or ','.
func (p *parser) expr() value.Value {
	rest := p.src[p.pos:]
	n := strings.IndexAny(rest, "(),")
	if n < 0 {
		n = len(rest)
	}
	switch {
	case n == 0:
		return errEmpty
	case rest[0] == '"':
		return p.text()
	case n > 1 && n < len(rest) && rest[n] == '(':
		return p.call(rest[:n])
	case isUpper(rest[0]):
		return p.cell()
	}
	v, ok := value.ParseNumber(rest[:n])
	if !ok {
		return errGeneral
	}
	p.pos += n
	return v
}

// text parses a quoted literal. An unterminated literal leaves the cursor at
// the end of input, an unknown escape leaves it after the closing quote.
func (p *parser) text() value.Value {
	var sb strings.Builder
	for i := p.pos + 1; i < len(p.src); i++ {
		switch c := p.src[i]; c {
		case '"':
			p.pos = i + 1
			return value.Text(sb.String())
		case '\\':
			if i+1 < len(p.src) && (p.src[i+1] == '\\' || p.src[i+1] == '"') {
				sb.WriteByte(p.src[i+1])
				i++
				continue
			}
			p.pos = skipText(p.src, p.pos)
			return value.Error(value.ErrBadArg)
		default:
			sb.WriteByte(c)
		}
	}
	p.pos = len(p.src)
	return value.Error(value.ErrBadArg)
}

// skipText returns the index just past the string literal opening at start.
// A backslash always pairs with the character after it.
func skipText(src string, start int) int {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(src)
}

// skipArgs moves the cursor past the ')' that closes the current call,
// stepping over nested calls and string literals.
func (p *parser) skipArgs() {
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '"':
			p.pos = skipText(p.src, p.pos)
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

// call evaluates NAME(args...). Variadic calls fold every argument into an
// accumulator with the function's binary form; range arguments are reduced
// with the same function first.
func (p *parser) call(name string) value.Value {
	p.pos += len(name) + 1
	b, ok := p.funcs.Lookup(name)
	if !ok {
		p.skipArgs()
		return value.Error(value.ErrNoSuchFunction)
	}

	first := p.expr()
	if b.Unary {
		if p.peek() != ')' {
			p.skipArgs()
			return value.Error(value.ErrTooManyArgs)
		}
		p.pos++
		switch {
		case first.Kind() == value.KindRange:
			return value.Error(value.ErrBadArg)
		case first.IsEmpty():
			return value.Error(value.ErrTooFewArgs)
		}
		return b.Fn(first, errEmpty)
	}

	acc, reduced := p.operand(b.Fn, first)
	second := errEmpty
	if p.peek() == ',' {
		p.pos++
		second, _ = p.operand(b.Fn, p.expr())
	}
	switch {
	case !second.IsEmpty():
		acc = b.Fn(acc, second)
	case acc.IsError() || reduced:
		// SUM(A1:A3) needs no second operand; errors are kept as they are.
	default:
		acc = value.Error(value.ErrTooFewArgs)
	}

	for p.peek() == ',' {
		p.pos++
		next, _ := p.operand(b.Fn, p.expr())
		acc = b.Fn(acc, next)
	}
	if p.peek() != ')' {
		return errGeneral
	}
	p.pos++
	if acc.IsEmpty() {
		return value.Error(value.ErrTooFewArgs)
	}
	return acc
}

// operand reduces v with fn when it is a range.
func (p *parser) operand(fn funcs.Func, v value.Value) (value.Value, bool) {
	if v.Kind() != value.KindRange {
		return v, false
	}
	cells := v.Range().Cells()
	return funcs.Reduce(fn, func(yield func(value.Value) bool) {
		for _, c := range cells {
			if !yield(p.read(c)) {
				return
			}
		}
	}), true
}

// cell parses a single address or a range. Identical corners degrade to a
// single reference.
func (p *parser) cell() value.Value {
	from, n, ok := scanAddress(p.src[p.pos:])
	if !ok {
		return errGeneral
	}
	p.pos += n
	if p.peek() == ':' {
		if to, m, ok := scanAddress(p.src[p.pos+1:]); ok {
			p.pos += 1 + m
			if from == to {
				return p.read(from)
			}
			if !from.Valid() || !to.Valid() {
				return value.Error(value.ErrOutOfBounds)
			}
			return value.Range(from, to)
		}
	}
	return p.read(from)
}

// scanAddress recognizes COLUMN ROW at the start of s, where ROW is one or
// two digits. The returned coordinate may lie outside the grid.
func scanAddress(s string) (cellref.Coord, int, bool) {
	if len(s) < 2 || !isUpper(s[0]) || !isDigit(s[1]) {
		return cellref.Coord{}, 0, false
	}
	row, n := int(s[1]-'0'), 2
	if len(s) > 2 && isDigit(s[2]) {
		row = row*10 + int(s[2]-'0')
		n++
	}
	return cellref.At(int(s[0]-'A'), row-1), n, true
}

// read resolves one referenced cell. The self check comes before the bounds
// check; neither reaches the Reader.
func (p *parser) read(at cellref.Coord) value.Value {
	if at == p.self {
		return value.Error(value.ErrCycle)
	}
	if !at.Valid() {
		return value.Error(value.ErrOutOfBounds)
	}
	return p.reader.ReadCell(at)
}
