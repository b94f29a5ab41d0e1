// Package funcs holds the closed table of built-in spreadsheet functions.
//
// Every built-in is a binary reducer `f(a, b) -> Value`. Variadic calls such
// as `SUM(1,2,3)` and range arguments are folded left to right over the same
// binary function by the formula evaluator; there is no n-ary signature.
// Four functions (INT, FLOAT, TEXT, NEG) are unary from the user's point of
// view and ignore their second operand.
package funcs
