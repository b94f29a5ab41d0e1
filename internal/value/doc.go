// Package value defines the typed result produced by formula evaluation.
//
// A Value is one of five shapes: Int, Float, Text, Range or Error. Values
// are small and passed by value; a function that combines operands always
// returns a fresh Value and never aliases its inputs, so the Text payload
// has exactly one holder at a time.
//
// Range values only ever appear as function arguments. Error values carry
// nothing but their ErrorCode.
package value
