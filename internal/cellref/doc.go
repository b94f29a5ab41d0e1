// internal/cellref/doc.go

/*
Package cellref provides the coordinate model of the fixed sheet grid.

A cell is addressed as a single upper-case column letter followed by a
one or two digit, 1-based row number, e.g. `A1` or `Z26`. Internally
coordinates are 0-based. A range is written `B2:A1` and is always
normalized so that its first corner is the top-left one.

This package centralizes address formatting and parsing for everything
outside the formula evaluator (file loaders, manifests, the UI). The
evaluator scans addresses itself because it must keep its cursor
semantics, but it produces the same Coord values.
*/
package cellref
