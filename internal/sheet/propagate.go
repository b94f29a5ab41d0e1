package sheet

import (
	"context"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/formula"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/specialistvlad/gridsheet/internal/value"
)

const (
	// maxDepth bounds nested recomputation. A chain longer than the number
	// of cells must revisit one of them.
	maxDepth = cellref.Size * cellref.Size
	// maxRecomputes bounds the total work of one propagation, which can grow
	// exponentially when cycles fan out.
	maxRecomputes = 64 * cellref.Size * cellref.Size
)

// propagation is the state threaded through one edit's recompute chain.
type propagation struct {
	root       cellref.Coord
	depth      int
	recomputes int
	// path holds the cells currently being recomputed; nil unless strict.
	path map[cellref.Coord]bool
}

func newPropagation(root cellref.Coord, strict bool) *propagation {
	p := &propagation{root: root}
	if strict {
		p.path = map[cellref.Coord]bool{root: true}
	}
	return p
}

// update evaluates src for the cell at `at`, caches the result and
// recomputes the cell's dependents.
func (s *Sheet) update(ctx context.Context, at cellref.Coord, src string, manual bool, p *propagation) {
	logger := ctxlog.FromContext(ctx)

	if manual {
		if removed := s.graph.Clear(at); removed > 0 {
			logger.Debug("Dropped dependency edges.", "cell", at, "count", removed)
		}
	}

	reader := formula.ReaderFunc(func(src cellref.Coord) value.Value {
		if manual {
			created, err := s.graph.Link(src, at)
			if err != nil {
				logger.Error("Failed to register dependency.", "source", src, "dependent", at, "error", err)
			} else if created {
				logger.Debug("Registered dependency.", "source", src, "dependent", at)
			}
		}
		return s.read(src)
	})
	v := s.eval.Evaluate(src, at, reader)

	c := s.cell(at)
	c.Formula = src
	s.render(c, v)
	logger.Debug("Cell evaluated.", "cell", at, "manual", manual, "value", v)
	s.notify(at, manual)

	s.propagate(ctx, at, p)
}

// propagate recomputes the dependents of `at` in edge registration order.
func (s *Sheet) propagate(ctx context.Context, at cellref.Coord, p *propagation) {
	for _, dst := range s.graph.Dependents(at) {
		switch {
		case dst == p.root:
			s.markCycle(ctx, p.root, "edit root reached")
			continue
		case p.path != nil && p.path[dst]:
			s.markCycle(ctx, dst, "cell revisited")
			continue
		case p.depth >= maxDepth:
			s.markCycle(ctx, dst, "propagation too deep")
			continue
		case p.recomputes >= maxRecomputes:
			s.markCycle(ctx, dst, "propagation budget exhausted")
			continue
		}

		p.depth++
		p.recomputes++
		if p.path != nil {
			p.path[dst] = true
		}
		s.update(ctx, dst, s.cell(dst).Formula, false, p)
		if p.path != nil {
			delete(p.path, dst)
		}
		p.depth--
	}
}

// markCycle puts a cell into the Cycle error state without evaluating it.
func (s *Sheet) markCycle(ctx context.Context, at cellref.Coord, reason string) {
	ctxlog.FromContext(ctx).Warn("Dependency cycle.", "cell", at, "reason", reason)
	c := s.cell(at)
	c.Tag = TagError
	c.Code = value.ErrCycle
	c.Text = messages.Error(s.lang, value.ErrCycle)
	s.clampScroll(c)
	s.notify(at, false)
}

// render caches the display form of v on c.
func (s *Sheet) render(c *Cell, v value.Value) {
	if v.IsError() {
		c.Tag = TagError
		c.Code = v.Code().Surfaced()
		c.Text = messages.Error(s.lang, c.Code)
	} else {
		c.Tag = c.Override.Tag()
		c.Code = value.ErrGeneral
		c.Text = v.Format()
	}
	s.clampScroll(c)
}

func (s *Sheet) clampScroll(c *Cell) {
	c.Scroll = min(c.Scroll, max(len(c.Text)-VisibleTextLength, 0))
}

// read interprets the cached display text of a referenced cell according to
// its type tag.
func (s *Sheet) read(at cellref.Coord) value.Value {
	c := s.cell(at)
	switch c.Tag {
	case TagInt:
		return value.Int(value.LeadingInt(c.Text))
	case TagFloat:
		return value.Float(value.LeadingFloat(c.Text))
	case TagText:
		return value.Text(c.Text)
	case TagError:
		return value.Error(c.Code)
	}
	return formula.InferLiteral(c.Text)
}

func (s *Sheet) notify(at cellref.Coord, manual bool) {
	if len(s.observers) == 0 {
		return
	}
	c := s.cell(at)
	u := Update{
		At:      at,
		Formula: c.Formula,
		Text:    c.Text,
		Tag:     c.Tag,
		Code:    c.Code,
		Manual:  manual,
	}
	for _, o := range s.observers {
		o.CellUpdated(u)
	}
}
