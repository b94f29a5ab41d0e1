package depgraph

import (
	"slices"

	"github.com/specialistvlad/gridsheet/internal/cellref"
)

// Graph holds forward edges and back-references keyed by cell.
type Graph struct {
	// forward maps a source cell to its dependents, in registration order.
	forward map[cellref.Coord]*orderedSet
	// back maps a dependent cell to the sources it registered.
	back map[cellref.Coord]*orderedSet
}

// orderedSet is a set of coordinates that remembers insertion order.
type orderedSet struct {
	items []cellref.Coord
	index map[cellref.Coord]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[cellref.Coord]struct{})}
}

func (s *orderedSet) add(c cellref.Coord) bool {
	if _, ok := s.index[c]; ok {
		return false
	}
	s.index[c] = struct{}{}
	s.items = append(s.items, c)
	return true
}

func (s *orderedSet) remove(c cellref.Coord) bool {
	if _, ok := s.index[c]; !ok {
		return false
	}
	delete(s.index, c)
	if i := slices.Index(s.items, c); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return true
}

func (s *orderedSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *orderedSet) list() []cellref.Coord {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}
