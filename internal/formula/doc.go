/*
Package formula evaluates cell formulas.

A cell's source is interpreted in one of two contexts. Source starting with
`=` is a formula and is parsed with the full grammar:

	expr          := string | call | cell | range | number
	call          := NAME '(' expr (',' expr)* ')'
	cell          := COLUMN ROW              // A1 .. Z26
	range         := cell ':' cell
	string        := '"' ( '\\' | '\"' | char )* '"'
	number        := [+-]? ( digits ( '.' digits? )? | '.' digits )

Anything else is literal text. When another formula reads a cell, the
cell's cached display text is interpreted in the literal (in-cell) context
instead: a whole-string number becomes Int or Float and everything else is
Text, so a cell showing `42` reads back as Int 42.

Tokenizing, parsing and evaluation happen in a single recursive pass over a
cursor. Errors are values; the evaluator never fails.
*/
package formula
