// Package depgraph records which cells read which other cells.
//
// A forward edge S -> D means that D's formula read S during D's last manual
// evaluation. Forward edges drive recomputation when S changes. For every
// dependent the graph also keeps the list of sources it registered (the
// back-references), so that a fresh manual edit of D can remove exactly the
// edges D's previous formula created before the new formula registers its own.
//
// The graph is not safe for concurrent use; the sheet that owns it serializes
// access.
package depgraph
