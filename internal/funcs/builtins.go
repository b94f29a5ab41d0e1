package funcs

import (
	"math"
	"strconv"

	"github.com/specialistvlad/gridsheet/internal/value"
)

func builtins() []*Builtin {
	return []*Builtin{
		{Name: "INT", Unary: true, Fn: toInt},
		{Name: "FLOAT", Unary: true, Fn: toFloat},
		{Name: "TEXT", Unary: true, Fn: toText},
		{Name: "NEG", Unary: true, Fn: neg},
		{Name: "SUM", Fn: sum},
		{Name: "SUB", Fn: sub},
		{Name: "MUL", Fn: mul},
		{Name: "DIV", Fn: div},
		{Name: "MIN", Fn: minimum},
		{Name: "MAX", Fn: maximum},
		{Name: "CONCAT", Fn: concat},
	}
}

// firstError returns the first operand that is an error, if any.
func firstError(a, b value.Value) (value.Value, bool) {
	if a.IsError() {
		return a, true
	}
	if b.IsError() {
		return b, true
	}
	return value.Value{}, false
}

// arith applies the numeric promotion rule: two Ints stay integral, any Float
// widens both sides, anything else is a bad argument.
func arith(a, b value.Value, ints func(x, y int64) int64, floats func(x, y float64) float64) value.Value {
	if e, ok := firstError(a, b); ok {
		return e
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return value.Error(value.ErrBadArg)
	}
	if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
		return value.Int(ints(a.Int(), b.Int()))
	}
	return value.Float(floats(a.AsFloat(), b.AsFloat()))
}

func sum(a, b value.Value) value.Value {
	return arith(a, b,
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

func sub(a, b value.Value) value.Value {
	return arith(a, b,
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

func mul(a, b value.Value) value.Value {
	return arith(a, b,
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

func div(a, b value.Value) value.Value {
	if e, ok := firstError(a, b); ok {
		return e
	}
	if b.IsZero() {
		return value.Error(value.ErrDivZero)
	}
	return arith(a, b,
		func(x, y int64) int64 { return x / y },
		func(x, y float64) float64 { return x / y })
}

func minimum(a, b value.Value) value.Value {
	return arith(a, b,
		func(x, y int64) int64 { return min(x, y) },
		math.Min)
}

func maximum(a, b value.Value) value.Value {
	return arith(a, b,
		func(x, y int64) int64 { return max(x, y) },
		math.Max)
}

func concat(a, b value.Value) value.Value {
	if e, ok := firstError(a, b); ok {
		return e
	}
	if a.Kind() != value.KindText || b.Kind() != value.KindText {
		return value.Error(value.ErrBadArg)
	}
	return value.Text(a.Text() + b.Text())
}

func toInt(a, _ value.Value) value.Value {
	switch a.Kind() {
	case value.KindInt, value.KindError:
		return a
	case value.KindFloat:
		return value.Int(truncate(a.Float()))
	case value.KindText:
		return value.Int(value.LeadingInt(a.Text()))
	}
	return value.Error(value.ErrBadArg)
}

// truncate converts toward zero, saturating at the int64 limits.
func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func toFloat(a, _ value.Value) value.Value {
	switch a.Kind() {
	case value.KindFloat, value.KindError:
		return a
	case value.KindInt:
		return value.Float(float64(a.Int()))
	case value.KindText:
		return value.Float(value.LeadingFloat(a.Text()))
	}
	return value.Error(value.ErrBadArg)
}

func toText(a, _ value.Value) value.Value {
	switch a.Kind() {
	case value.KindText, value.KindError:
		return a
	case value.KindInt:
		return value.Text(strconv.FormatInt(a.Int(), 10))
	case value.KindFloat:
		return value.Text(strconv.FormatFloat(a.Float(), 'f', 3, 64))
	}
	return value.Error(value.ErrBadArg)
}

func neg(a, _ value.Value) value.Value {
	switch a.Kind() {
	case value.KindError:
		return a
	case value.KindInt:
		return value.Int(-a.Int())
	case value.KindFloat:
		return value.Float(-a.Float())
	}
	return value.Error(value.ErrBadArg)
}
