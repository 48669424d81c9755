package tree

import (
	"testing"

	"github.com/panetile/panetile/internal/geometry"
)

// fakeView is a minimal in-memory payload for tree tests.
type fakeView struct {
	geo        geometry.Rect
	fullscreen bool
	unmapped   bool
	setCalls   int
	callbacks  []func()
}

func (f *fakeView) Geometry() geometry.Rect { return f.geo }

func (f *fakeView) SetGeometry(r geometry.Rect) error {
	f.geo = r
	f.setCalls++
	return nil
}

func (f *fakeView) Fullscreen() bool { return f.fullscreen }
func (f *fakeView) Mapped() bool     { return !f.unmapped }

func (f *fakeView) OnGeometryChanged(fn func()) func() {
	f.callbacks = append(f.callbacks, fn)
	idx := len(f.callbacks) - 1
	return func() { f.callbacks[idx] = nil }
}

// fire simulates a geometry change arriving from outside the tree.
func (f *fakeView) fire() {
	for _, fn := range f.callbacks {
		if fn != nil {
			fn()
		}
	}
}

func newTestLeaf() (*Leaf, *fakeView) {
	v := &fakeView{}
	return NewLeaf(v, nil, LeafConfig{}), v
}

func widths(s *Split) []int {
	out := make([]int, 0, len(s.Children()))
	for _, c := range s.Children() {
		out = append(out, c.Geometry().Width)
	}
	return out
}

func TestSingleChildFillsSplittable(t *testing.T) {
	s := NewSplit(Horizontal)
	l, v := newTestLeaf()
	s.AddChild(l, nil)
	s.SetGeometry(geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 500}, nil)

	want := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 500}
	if v.geo != want {
		t.Fatalf("single child: got %v, want %v", v.geo, want)
	}
}

func TestSecondChildHalvesExtent(t *testing.T) {
	s := NewSplit(Horizontal)
	a, _ := newTestLeaf()
	s.AddChild(a, nil)
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)

	b, _ := newTestLeaf()
	s.AddChild(b, nil)

	// 1000 splits evenly: 500 each.
	got := widths(s)
	if got[0] != 500 || got[1] != 500 {
		t.Fatalf("after second insert: widths %v, want [500 500]", got)
	}
	if b.Geometry().X != 500 {
		t.Fatalf("second child X: got %d, want 500", b.Geometry().X)
	}
}

func TestThirdChildTakesThirdShare(t *testing.T) {
	s := NewSplit(Horizontal)
	for i := 0; i < 2; i++ {
		l, _ := newTestLeaf()
		s.AddChild(l, nil)
	}
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)

	l, _ := newTestLeaf()
	s.AddChild(l, nil)

	// 1000/3 with the last child absorbing the remainder: 333, 333, 334.
	got := widths(s)
	if got[0] != 333 || got[1] != 333 || got[2] != 334 {
		t.Fatalf("after third insert: widths %v, want [333 333 334]", got)
	}

	// Children tile the extent exactly, no overlap and no hole.
	x := 0
	for i, c := range s.Children() {
		if c.Geometry().X != x {
			t.Fatalf("child %d X: got %d, want %d", i, c.Geometry().X, x)
		}
		x += c.Geometry().Width
	}
	if x != 1000 {
		t.Fatalf("children cover %d, want 1000", x)
	}
}

func TestRemoveChildRedistributesProportionally(t *testing.T) {
	s := NewSplit(Horizontal)
	var leaves []*Leaf
	for i := 0; i < 3; i++ {
		l, _ := newTestLeaf()
		s.AddChild(l, nil)
		leaves = append(leaves, l)
	}
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)
	// Established sizes: 333, 333, 334.

	if err := s.RemoveChild(leaves[1], nil); err != nil {
		t.Fatalf("remove child: %v", err)
	}

	// Survivors keep their ratio: 1000*333/667 = 499, remainder to the
	// last child = 501.
	got := widths(s)
	if got[0] != 499 || got[1] != 501 {
		t.Fatalf("after remove: widths %v, want [499 501]", got)
	}
	if leaves[1].Parent() != nil {
		t.Fatalf("removed child still has a parent")
	}
}

func TestRemoveMissingChildFails(t *testing.T) {
	s := NewSplit(Horizontal)
	l, _ := newTestLeaf()
	s.AddChild(l, nil)
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)

	stranger, _ := newTestLeaf()
	if err := s.RemoveChild(stranger, nil); err == nil {
		t.Fatalf("removing a non-member child must fail")
	}
	// The tree is untouched by the failed removal.
	if len(s.Children()) != 1 || widths(s)[0] != 1000 {
		t.Fatalf("failed removal disturbed the tree: %v", widths(s))
	}
}

func TestInternalGapsReserveSpacing(t *testing.T) {
	s := NewSplit(Horizontal)
	s.SetGaps(Gaps{Internal: 10})
	for i := 0; i < 3; i++ {
		l, _ := newTestLeaf()
		s.AddChild(l, nil)
	}
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)

	// Two internal gaps reserve 20, leaving 980 for the children.
	total := 0
	for _, w := range widths(s) {
		total += w
	}
	if total != 980 {
		t.Fatalf("child extents sum to %d, want 980", total)
	}
	for i := 1; i < 3; i++ {
		prev := s.Children()[i-1].Geometry()
		cur := s.Children()[i].Geometry()
		if gap := cur.X - (prev.X + prev.Width); gap != 10 {
			t.Fatalf("gap between child %d and %d: got %d, want 10", i-1, i, gap)
		}
	}
}

func TestOuterGapsReduceSplittable(t *testing.T) {
	s := NewSplit(Horizontal)
	s.SetGaps(Gaps{Left: 5, Right: 7})
	a, _ := newTestLeaf()
	b, _ := newTestLeaf()
	s.AddChild(a, nil)
	s.AddChild(b, nil)
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, nil)

	if got := s.Splittable(); got != 988 {
		t.Fatalf("splittable: got %d, want 988", got)
	}
	if a.Geometry().X != 5 {
		t.Fatalf("first child X: got %d, want 5", a.Geometry().X)
	}
	if got := widths(s); got[0]+got[1] != 988 {
		t.Fatalf("children cover %d, want 988", got[0]+got[1])
	}
}

func TestGapCompositionAtBoundaries(t *testing.T) {
	s := NewSplit(Horizontal)
	var leaves []*Leaf
	for i := 0; i < 3; i++ {
		l, _ := newTestLeaf()
		s.AddChild(l, nil)
		leaves = append(leaves, l)
	}
	s.SetGaps(Gaps{Left: 4, Right: 6, Top: 8, Bottom: 2, Internal: 10})

	// Only the first child keeps Left, only the last keeps Right; the
	// cross-axis and internal gaps pass through to everyone.
	first := leaves[0].Gaps()
	if first != (Gaps{Left: 4, Right: 0, Top: 8, Bottom: 2, Internal: 10}) {
		t.Fatalf("first child gaps: %+v", first)
	}
	mid := leaves[1].Gaps()
	if mid != (Gaps{Left: 0, Right: 0, Top: 8, Bottom: 2, Internal: 10}) {
		t.Fatalf("middle child gaps: %+v", mid)
	}
	last := leaves[2].Gaps()
	if last != (Gaps{Left: 0, Right: 6, Top: 8, Bottom: 2, Internal: 10}) {
		t.Fatalf("last child gaps: %+v", last)
	}
}

func TestVerticalSplitDividesHeight(t *testing.T) {
	s := NewSplit(Vertical)
	a, _ := newTestLeaf()
	b, _ := newTestLeaf()
	s.AddChild(a, nil)
	s.AddChild(b, nil)
	s.SetGeometry(geometry.Rect{X: 10, Y: 20, Width: 800, Height: 600}, nil)

	if a.Geometry() != (geometry.Rect{X: 10, Y: 20, Width: 800, Height: 300}) {
		t.Fatalf("top child: %v", a.Geometry())
	}
	if b.Geometry() != (geometry.Rect{X: 10, Y: 320, Width: 800, Height: 300}) {
		t.Fatalf("bottom child: %v", b.Geometry())
	}
}

func TestInsertChildAtIndex(t *testing.T) {
	s := NewSplit(Horizontal)
	a, _ := newTestLeaf()
	c, _ := newTestLeaf()
	s.AddChild(a, nil)
	s.AddChild(c, nil)
	s.SetGeometry(geometry.Rect{Width: 900, Height: 300}, nil)

	b, _ := newTestLeaf()
	if err := s.InsertChild(b, 1, nil); err != nil {
		t.Fatalf("insert at 1: %v", err)
	}
	if s.Children()[1] != Node(b) {
		t.Fatalf("inserted child not at index 1")
	}
	// Order on screen follows child order.
	if !(a.Geometry().X < b.Geometry().X && b.Geometry().X < c.Geometry().X) {
		t.Fatalf("inserted child not between its neighbors: %d %d %d",
			a.Geometry().X, b.Geometry().X, c.Geometry().X)
	}
}

func TestInsertChildIndexOutOfRange(t *testing.T) {
	s := NewSplit(Horizontal)
	l, _ := newTestLeaf()
	if err := s.InsertChild(l, 1, nil); err == nil {
		t.Fatalf("insert past the end must fail")
	}
	if err := s.InsertChild(l, -1, nil); err == nil {
		t.Fatalf("negative index must fail")
	}
}

func TestNestedSplitPropagation(t *testing.T) {
	root := NewSplit(Horizontal)
	left, _ := newTestLeaf()
	root.AddChild(left, nil)

	inner := NewSplit(Vertical)
	top, _ := newTestLeaf()
	bottom, _ := newTestLeaf()
	inner.AddChild(top, nil)
	inner.AddChild(bottom, nil)
	root.AddChild(inner, nil)

	root.SetGeometry(geometry.Rect{Width: 1000, Height: 600}, nil)

	if left.Geometry().Width != 500 {
		t.Fatalf("left width: got %d, want 500", left.Geometry().Width)
	}
	if top.Geometry().Height != 300 || bottom.Geometry().Height != 300 {
		t.Fatalf("inner heights: %d/%d, want 300/300",
			top.Geometry().Height, bottom.Geometry().Height)
	}
	if bottom.Geometry().X != 500 {
		t.Fatalf("inner column X: got %d, want 500", bottom.Geometry().X)
	}
}

// recorder is a minimal Transaction implementation for propagation tests.
type recorder struct {
	views []View
	rects []geometry.Rect
}

func (r *recorder) AddGeometry(v View, target geometry.Rect) {
	r.views = append(r.views, v)
	r.rects = append(r.rects, target)
}

func TestTransactionDefersApplication(t *testing.T) {
	s := NewSplit(Horizontal)
	a, va := newTestLeaf()
	b, vb := newTestLeaf()
	s.AddChild(a, nil)
	s.AddChild(b, nil)

	rec := &recorder{}
	s.SetGeometry(geometry.Rect{Width: 1000, Height: 500}, rec)

	if len(rec.views) != 2 {
		t.Fatalf("recorded %d assignments, want 2", len(rec.views))
	}
	// Views themselves stay untouched until the owner commits.
	if va.setCalls != 0 || vb.setCalls != 0 {
		t.Fatalf("views moved during transactional layout: %d/%d calls",
			va.setCalls, vb.setCalls)
	}
	if rec.rects[0].Width+rec.rects[1].Width != 1000 {
		t.Fatalf("recorded widths cover %d, want 1000",
			rec.rects[0].Width+rec.rects[1].Width)
	}
}
