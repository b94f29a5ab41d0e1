/*
Package sheet is the cell store of the spreadsheet and the single entry point
for mutating it.

Every change goes through Evaluate. A manual evaluation (the user typed a
formula, a file is being loaded) first drops the dependency edges the cell's
previous formula registered, then evaluates the new formula while recording
an edge for every cell it reads. A propagated evaluation re-runs a dependent's
stored formula after one of its sources changed and leaves all edges alone.

After a cell is rendered its dependents are recomputed recursively in the
order their edges were registered. When a dependent turns out to be the cell
whose edit started the chain (the edit root), the root is marked with a Cycle
error instead. Chains that never reach the root are bounded by a depth limit,
and WithStrictCycles additionally catches any cell revisited on the current
propagation path.
*/
package sheet
