package value

import (
	"strconv"
	"strings"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// ScanNumber returns the length of the longest prefix of s that is a
// number literal, and whether that literal has a fractional point.
// Leading blanks are part of the literal. The grammar is
//
//	blank* [+-]? ( digit+ ( '.' digit* )? | '.' digit+ )
//
// A result of 0 means s does not start with a number.
func ScanNumber(s string) (n int, isFloat bool) {
	i := 0
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart

	if i < len(s) && s[i] == '.' {
		fracStart := i + 1
		j := fracStart
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if intDigits > 0 || j > fracStart {
			return j, true
		}
	}

	if intDigits == 0 {
		return 0, false
	}
	return i, false
}

// ParseNumber interprets the whole of s as a number literal. Literals
// without a point are Int, the rest are Float. Integer overflow saturates.
func ParseNumber(s string) (Value, bool) {
	n, isFloat := ScanNumber(s)
	if n == 0 || n != len(s) {
		return Value{}, false
	}
	literal := strings.TrimLeft(s, " \t\n\v\f\r")

	if isFloat {
		// ParseFloat rejects nothing the scanner accepts; on overflow it
		// returns ±Inf together with ErrRange, which is what we want.
		f, _ := strconv.ParseFloat(literal, 64)
		return Float(f), true
	}
	i, _ := strconv.ParseInt(literal, 10, 64)
	return Int(i), true
}

// LeadingInt parses the integer at the start of s the way INT reads text:
// leading blanks and a sign are accepted, parsing stops at the first
// non-digit, and a missing numeral yields 0.
func LeadingInt(s string) int64 {
	i := 0
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0
	}
	n, _ := strconv.ParseInt(s[start:i], 10, 64)
	return n
}

// LeadingFloat parses the decimal number at the start of s the way FLOAT
// reads text. It accepts an optional exponent; a missing numeral yields 0.
func LeadingFloat(s string) float64 {
	n, _ := ScanNumber(s)
	if n == 0 {
		return 0
	}
	end := n
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	f, _ := strconv.ParseFloat(strings.TrimLeft(s[:end], " \t\n\v\f\r"), 64)
	return f
}
