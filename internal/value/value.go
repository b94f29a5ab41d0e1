package value

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/gridsheet/internal/cellref"
)

// Kind tags the payload a Value carries.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindRange
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindText:
		return "Text"
	case KindRange:
		return "Range"
	case KindError:
		return "Error"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the tagged result of evaluating a formula or a part of one.
// The zero Value is Int 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	r    cellref.Range
	code ErrorCode
}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Range returns a range value; the corners are normalized.
func Range(a, b cellref.Coord) Value {
	return Value{kind: KindRange, r: cellref.NewRange(a, b)}
}

// Error returns an error value.
func Error(code ErrorCode) Value { return Value{kind: KindError, code: code} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsError() bool { return v.kind == KindError }

// IsCode reports whether v is the error value with the given code.
func (v Value) IsCode(code ErrorCode) bool {
	return v.kind == KindError && v.code == code
}

// IsEmpty reports whether v is the internal "argument slot absent" sentinel.
func (v Value) IsEmpty() bool { return v.IsCode(ErrEmpty) }

func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// Int returns the integer payload. It is only meaningful for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is only meaningful for KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. It is only meaningful for KindText.
func (v Value) Text() string { return v.s }

// Range returns the range payload. It is only meaningful for KindRange.
func (v Value) Range() cellref.Range { return v.r }

// Code returns the error code. It is only meaningful for KindError.
func (v Value) Code() ErrorCode { return v.code }

// AsFloat widens a numeric value to float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// IsZero reports whether v is a numeric zero of either type.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	}
	return false
}

// Format renders the value the way a cell displays it: Int in decimal,
// Float with three fixed decimals, Text verbatim. Errors and ranges have
// no cell rendering of their own and format as their debug form.
func (v Value) Format() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', 3, 64)
	case KindText:
		return v.s
	}
	return v.String()
}

// String is a debug representation, e.g. `Int(5)` or `Error(DivZero)`.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("Float(%g)", v.f)
	case KindText:
		return fmt.Sprintf("Text(%q)", v.s)
	case KindRange:
		return fmt.Sprintf("Range(%s)", v.r)
	case KindError:
		return fmt.Sprintf("Error(%s)", v.code)
	}
	return v.kind.String()
}
