package depgraph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridsheet/internal/cellref"
)

// ErrCycle is wrapped by the error DetectCycles returns.
var ErrCycle = errors.New("dependency cycle")

// New creates and returns an empty Graph.
func New() *Graph {
	return &Graph{
		forward: make(map[cellref.Coord]*orderedSet),
		back:    make(map[cellref.Coord]*orderedSet),
	}
}

// Link records that dst read src: dst joins src's forward edges and src joins
// dst's back-references. Duplicate pairs are ignored. It reports whether a
// new edge was created.
func (g *Graph) Link(src, dst cellref.Coord) (bool, error) {
	if src == dst {
		return false, fmt.Errorf("self-referential edge not allowed: %s -> %s", src, dst)
	}

	fwd, ok := g.forward[src]
	if !ok {
		fwd = newOrderedSet()
		g.forward[src] = fwd
	}
	back, ok := g.back[dst]
	if !ok {
		back = newOrderedSet()
		g.back[dst] = back
	}
	back.add(src)
	return fwd.add(dst), nil
}

// Clear removes every forward edge that dst registered and forgets dst's
// back-references. It returns the number of edges removed.
func (g *Graph) Clear(dst cellref.Coord) int {
	back, ok := g.back[dst]
	if !ok {
		return 0
	}
	removed := 0
	for _, src := range back.items {
		fwd, ok := g.forward[src]
		if !ok {
			continue
		}
		if fwd.remove(dst) {
			removed++
		}
		if fwd.len() == 0 {
			delete(g.forward, src)
		}
	}
	delete(g.back, dst)
	return removed
}

// Dependents returns the cells that read src, in registration order.
func (g *Graph) Dependents(src cellref.Coord) []cellref.Coord {
	return g.forward[src].list()
}

// Sources returns the cells dst registered during its last manual evaluation.
func (g *Graph) Sources(dst cellref.Coord) []cellref.Coord {
	return g.back[dst].list()
}

// Len returns the number of forward edges.
func (g *Graph) Len() int {
	n := 0
	for _, fwd := range g.forward {
		n += fwd.len()
	}
	return n
}

// DetectCycles checks the forward edges for a cycle. It returns an error
// wrapping ErrCycle that names the first cell found on a cycle. Cells are
// visited in column-major grid order so the result is deterministic.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of cells:
	// permanent: fully visited and not on a cycle.
	// temporary: on the current recursion stack.
	// unvisited: everything else.
	permanent := make(map[cellref.Coord]bool)
	temporary := make(map[cellref.Coord]bool)

	var visit func(c cellref.Coord) error
	visit = func(c cellref.Coord) error {
		if permanent[c] {
			return nil
		}
		if temporary[c] {
			return fmt.Errorf("%w involving cell %s", ErrCycle, c)
		}

		temporary[c] = true
		for _, dependent := range g.forward[c].list() {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, c)
		permanent[c] = true

		return nil
	}

	for _, c := range cellref.All() {
		if _, ok := g.forward[c]; !ok || permanent[c] {
			continue
		}
		if err := visit(c); err != nil {
			return err
		}
	}

	return nil
}
