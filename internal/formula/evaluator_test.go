package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/value"
	"github.com/stretchr/testify/assert"
)

// grid is an in-memory Reader that records every cell it is asked for.
type grid struct {
	cells map[cellref.Coord]string
	reads []cellref.Coord
}

func newGrid(cells map[string]string) *grid {
	g := &grid{cells: make(map[cellref.Coord]string)}
	for addr, text := range cells {
		g.cells[cellref.MustParse(addr)] = text
	}
	return g
}

func (g *grid) ReadCell(at cellref.Coord) value.Value {
	g.reads = append(g.reads, at)
	return InferLiteral(g.cells[at])
}

func eval(src string, g *grid) value.Value {
	return New(nil).Evaluate(src, cellref.MustParse("Z26"), g)
}

func errv(code value.ErrorCode) value.Value { return value.Error(code) }

func TestEvaluate_Literals(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected value.Value
	}{
		{name: "plain text", src: "hello", expected: value.Text("hello")},
		{name: "plain number stays text", src: "42", expected: value.Text("42")},
		{name: "empty source", src: "", expected: value.Text("")},
		{name: "int", src: "=42", expected: value.Int(42)},
		{name: "negative float", src: "=-1.25", expected: value.Float(-1.25)},
		{name: "string literal", src: `="a,b(c)"`, expected: value.Text("a,b(c)")},
		{name: "escapes", src: `="say \"hi\" \\o/"`, expected: value.Text(`say "hi" \o/`)},
		{name: "unterminated string", src: `="abc`, expected: errv(value.ErrBadArg)},
		{name: "bad escape", src: `="a\qb"`, expected: errv(value.ErrBadArg)},
		{name: "bare marker", src: "=", expected: errv(value.ErrTooFewArgs)},
		{name: "trailing garbage", src: "=1 2", expected: errv(value.ErrGeneral)},
		{name: "garbage after string", src: `="a"b`, expected: errv(value.ErrGeneral)},
		{name: "exponent not accepted", src: "=1e3", expected: errv(value.ErrGeneral)},
		{name: "bare word", src: "=hello", expected: errv(value.ErrGeneral)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, eval(tc.src, newGrid(nil)))
		})
	}
}

func TestEvaluate_Calls(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected value.Value
	}{
		{name: "binary", src: "=SUM(2,3)", expected: value.Int(5)},
		{name: "variadic folds left", src: "=SUB(10,3,2)", expected: value.Int(5)},
		{name: "promotion", src: "=SUM(2,3.5)", expected: value.Float(5.5)},
		{name: "nested", src: "=MUL(SUM(1,2),NEG(4))", expected: value.Int(-12)},
		{name: "unary", src: "=TEXT(1.5)", expected: value.Text("1.500")},
		{name: "concat", src: `=CONCAT("ab","cd","e")`, expected: value.Text("abcde")},
		{name: "unary with two arguments", src: "=INT(5,6)", expected: errv(value.ErrTooManyArgs)},
		{name: "unary without argument", src: "=NEG()", expected: errv(value.ErrTooFewArgs)},
		{name: "variadic with one argument", src: "=SUM(5)", expected: errv(value.ErrTooFewArgs)},
		{name: "variadic without arguments", src: "=SUM()", expected: errv(value.ErrTooFewArgs)},
		{name: "missing close", src: "=SUM(1,2", expected: errv(value.ErrGeneral)},
		{name: "unknown function", src: "=FOO(1,2)", expected: errv(value.ErrNoSuchFunction)},
		{name: "unknown function is case sensitive", src: "=sum(1,2)", expected: errv(value.ErrNoSuchFunction)},
		{name: "unknown nested function", src: `=SUM(FOO(1,")"),2)`, expected: errv(value.ErrNoSuchFunction)},
		{name: "inner error wins", src: "=SUM(DIV(1,0),2)", expected: errv(value.ErrDivZero)},
		{name: "first error wins", src: "=SUM(DIV(1,0),NEG(\"x\"))", expected: errv(value.ErrDivZero)},
		{name: "single error argument", src: "=SUM(DIV(1,0))", expected: errv(value.ErrDivZero)},
		{name: "too many args inside call", src: "=SUM(INT(1,2),3)", expected: errv(value.ErrTooManyArgs)},
		{name: "type mismatch", src: `=SUM(1,"2")`, expected: errv(value.ErrBadArg)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, eval(tc.src, newGrid(nil)))
		})
	}
}

func TestEvaluate_References(t *testing.T) {
	cells := map[string]string{
		"A1": "1",
		"A2": "2",
		"A3": "3",
		"B1": "4.500",
		"B2": "word",
		"C1": "42",
	}
	testCases := []struct {
		name     string
		src      string
		expected value.Value
	}{
		{name: "cached int reads back as int", src: "=C1", expected: value.Int(42)},
		{name: "cached float", src: "=B1", expected: value.Float(4.5)},
		{name: "cached text", src: "=B2", expected: value.Text("word")},
		{name: "range sum", src: "=SUM(A1:A3)", expected: value.Int(6)},
		{name: "reversed range", src: "=SUM(A3:A1)", expected: value.Int(6)},
		{name: "range then argument", src: "=SUM(A1:A3,4)", expected: value.Int(10)},
		{name: "argument then range", src: "=SUM(4,A1:A3)", expected: value.Int(10)},
		{name: "two ranges", src: "=MAX(A1:A2,A3:A3)", expected: value.Int(3)},
		{name: "two dimensional range", src: "=SUM(A1:B1)", expected: value.Float(5.5)},
		{name: "degenerate range", src: "=A2:A2", expected: value.Int(2)},
		{name: "range as final value", src: "=A1:A3", expected: errv(value.ErrBadArg)},
		{name: "range to unary", src: "=INT(A1:A3)", expected: errv(value.ErrBadArg)},
		{name: "row zero", src: "=A0", expected: errv(value.ErrOutOfBounds)},
		{name: "row beyond grid", src: "=A27", expected: errv(value.ErrOutOfBounds)},
		{name: "range beyond grid", src: "=SUM(A1:B30)", expected: errv(value.ErrOutOfBounds)},
		{name: "self reference", src: "=Z26", expected: errv(value.ErrCycle)},
		{name: "range covering self", src: "=SUM(Y26:Z26)", expected: errv(value.ErrCycle)},
		{name: "three digit row", src: "=A123", expected: errv(value.ErrGeneral)},
		{name: "column without row", src: "=A", expected: errv(value.ErrGeneral)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, eval(tc.src, newGrid(cells)))
		})
	}
}

func TestEvaluate_RangeReadOrder(t *testing.T) {
	g := newGrid(nil)
	eval("=CONCAT(B2:A1)", g)

	want := []cellref.Coord{
		cellref.MustParse("A1"),
		cellref.MustParse("A2"),
		cellref.MustParse("B1"),
		cellref.MustParse("B2"),
	}
	if diff := cmp.Diff(want, g.reads); diff != "" {
		t.Errorf("read order mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_SelfAndBoundsNeverReachReader(t *testing.T) {
	g := newGrid(nil)
	eval("=SUM(Z26,A99)", g)
	assert.Empty(t, g.reads)
}

func TestInferLiteral(t *testing.T) {
	assert.Equal(t, value.Int(42), InferLiteral("42"))
	assert.Equal(t, value.Float(5.5), InferLiteral("5.500"))
	assert.Equal(t, value.Text("=SUM(1,2)"), InferLiteral("=SUM(1,2)"))
	assert.Equal(t, value.Text("12 apples"), InferLiteral("12 apples"))
	assert.Equal(t, value.Text(""), InferLiteral(""))
}

func TestIsFormula(t *testing.T) {
	assert.True(t, IsFormula("=1"))
	assert.False(t, IsFormula(" =1"))
	assert.False(t, IsFormula(""))
}
