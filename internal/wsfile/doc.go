/*
Package wsfile reads and writes the binary sheet format.

A file starts with the 8-byte signature "WSSHEET\x01" followed by two bytes
holding the cursor column and row. Then, for every persisted cell in
column-major order:

	column  byte
	row     byte
	tag     byte    '?', 'I', 'F', 'T' or 'E'
	type    byte    override index 0..3 (auto, int, float, text)
	scroll  decimal digits, NUL
	length  decimal digits, NUL
	formula length bytes

Loading replays every record as a manual edit in file order, so dependency
edges are rebuilt by the evaluator rather than stored.
*/
package wsfile
