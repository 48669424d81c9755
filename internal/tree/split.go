package tree

import (
	"fmt"

	"github.com/panetile/panetile/internal/geometry"
)

// Direction is the axis a split divides along.
type Direction int

const (
	// Horizontal splits place children side by side, dividing width.
	Horizontal Direction = iota
	// Vertical splits stack children, dividing height.
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Split is an interior node that divides its rectangle among an ordered
// list of children along one axis.
type Split struct {
	base
	dir      Direction
	children []Node
}

// NewSplit creates an empty split. It occupies whatever geometry it is
// given until children arrive.
func NewSplit(dir Direction) *Split {
	return &Split{dir: dir}
}

func (s *Split) Direction() Direction { return s.dir }

// Children returns the ordered child list. Callers must not mutate it;
// use AddChild, InsertChild and RemoveChild.
func (s *Split) Children() []Node { return s.children }

func (s *Split) AsSplit() *Split { return s }
func (s *Split) AsLeaf() *Leaf   { return nil }

// SetGeometry assigns the rectangle and re-divides it among the children
// in proportion to their current sizes.
func (s *Split) SetGeometry(r geometry.Rect, tx Transaction) {
	s.geo = r
	s.recalculateChildren(tx)
}

// SetGaps installs the spec on this split and composes per-child specs:
// only the first child keeps the leading axis gap and only the last keeps
// the trailing one, so outer gaps appear once along the split axis.
// Cross-axis gaps and the internal gap pass through to every child.
func (s *Split) SetGaps(g Gaps) {
	s.gaps = g
	last := len(s.children) - 1
	for i, c := range s.children {
		cg := g
		if s.dir == Horizontal {
			if i > 0 {
				cg.Left = 0
			}
			if i < last {
				cg.Right = 0
			}
		} else {
			if i > 0 {
				cg.Top = 0
			}
			if i < last {
				cg.Bottom = 0
			}
		}
		c.SetGaps(cg)
	}
}

// Splittable returns the extent available for children along the split
// axis: the node's axis extent minus its outer gaps on that axis.
func (s *Split) Splittable() int {
	if s.dir == Horizontal {
		return s.geo.Width - s.gaps.Left - s.gaps.Right
	}
	return s.geo.Height - s.gaps.Top - s.gaps.Bottom
}

// AddChild appends a child and rebalances. The newcomer is seeded so the
// proportional pass grants it a 1/(N+1) share of the splittable extent
// while existing children shrink by the same factor.
func (s *Split) AddChild(n Node, tx Transaction) {
	// len(children) is always a valid insertion index.
	_ = s.InsertChild(n, len(s.children), tx)
}

// InsertChild places a child at the given position in the child order.
func (s *Split) InsertChild(n Node, index int, tx Transaction) error {
	if index < 0 || index > len(s.children) {
		return fmt.Errorf("insert child: index %d out of range [0,%d]", index, len(s.children))
	}
	if count := len(s.children); count > 0 {
		seed := s.geo
		extent := s.Splittable() / count
		if s.dir == Horizontal {
			seed.Width = extent
		} else {
			seed.Height = extent
		}
		n.seedGeometry(seed)
	}
	n.setParent(s)
	s.children = append(s.children, nil)
	copy(s.children[index+1:], s.children[index:])
	s.children[index] = n
	s.refreshGaps()
	s.recalculateChildren(tx)
	return nil
}

// RemoveChild detaches a child and redistributes its extent among the
// remaining children in proportion to their current sizes. Removing a
// node that is not a child of this split is an error.
func (s *Split) RemoveChild(n Node, tx Transaction) error {
	idx := -1
	for i, c := range s.children {
		if c == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove child: node is not a child of this split")
	}
	s.children = append(s.children[:idx], s.children[idx+1:]...)
	n.setParent(nil)
	s.refreshGaps()
	if len(s.children) > 0 {
		s.recalculateChildren(tx)
	}
	return nil
}

// refreshGaps reruns the per-child gap composition after the child order
// changed, since boundary membership decides the outer axis gaps.
func (s *Split) refreshGaps() {
	s.SetGaps(s.gaps)
}

// recalculateChildren divides the splittable extent among the children.
// Internal gaps between adjacent children are reserved first; the rest is
// split in proportion to the children's current extents along the axis,
// with the last child absorbing the integer remainder. Children with no
// recorded extent (a tree built from scratch) divide evenly.
func (s *Split) recalculateChildren(tx Transaction) {
	n := len(s.children)
	if n == 0 {
		return
	}
	distributable := s.Splittable() - s.gaps.Internal*(n-1)
	weights := make([]int, n)
	total := 0
	for i, c := range s.children {
		w := s.axisExtent(c.Geometry())
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = n
	}
	pos, used := 0, 0
	for i, c := range s.children {
		size := distributable * weights[i] / total
		if i == n-1 {
			size = distributable - used
		}
		c.SetGeometry(s.childGeometry(pos, size), tx)
		pos += size + s.gaps.Internal
		used += size
	}
}

// childGeometry builds a child rectangle from a position and extent along
// the split axis. The cross axis passes through unchanged; the child's
// own gaps handle cross-axis margins.
func (s *Split) childGeometry(pos, size int) geometry.Rect {
	if s.dir == Horizontal {
		return geometry.Rect{
			X:      s.geo.X + s.gaps.Left + pos,
			Y:      s.geo.Y,
			Width:  size,
			Height: s.geo.Height,
		}
	}
	return geometry.Rect{
		X:      s.geo.X,
		Y:      s.geo.Y + s.gaps.Top + pos,
		Width:  s.geo.Width,
		Height: size,
	}
}

func (s *Split) axisExtent(r geometry.Rect) int {
	if s.dir == Horizontal {
		return r.Width
	}
	return r.Height
}
