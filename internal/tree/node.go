// Package tree implements the tiling layout tree: an alternating
// hierarchy of split nodes and leaves where every geometry assignment to
// an interior node is divided proportionally among its children. The tree
// owns no windows; leaves hold opaque views and the surrounding workspace
// owns the tree, its registry, and the transaction batches geometry flows
// through.
package tree

import (
	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/view"
)

// Gaps describes the empty margins around a node. The four edge gaps
// shrink the rectangle a leaf hands its view; Internal is the spacing a
// split reserves between adjacent children.
type Gaps struct {
	Left     int
	Right    int
	Top      int
	Bottom   int
	Internal int
}

// Transaction collects geometry assignments produced during one tree
// operation. Leaves append to it instead of touching their views; the
// caller that opened the transaction commits it when the operation is
// complete. A nil Transaction makes leaves apply geometry immediately.
type Transaction interface {
	AddGeometry(v View, target geometry.Rect)
}

// View is the leaf payload contract, aliased from the view package so
// tree callers only need one import.
type View = view.View

// Node is a position in the layout tree. Exactly two implementations
// exist, Split and Leaf; the unexported methods keep it that way.
type Node interface {
	// Parent returns the enclosing split, or nil for the root.
	Parent() *Split

	// Geometry returns the rectangle assigned to this node.
	Geometry() geometry.Rect

	// SetGeometry assigns a rectangle to this node and propagates it
	// downward. Splits re-divide among children; leaves resolve a target
	// rectangle for their view and either push it into tx or, when tx is
	// nil, apply it directly.
	SetGeometry(r geometry.Rect, tx Transaction)

	// Gaps returns the gap specification currently applied to this node.
	Gaps() Gaps

	// SetGaps installs a gap specification. Splits compose per-child
	// specs and push them down; leaves store theirs for geometry
	// resolution.
	SetGaps(g Gaps)

	// AsSplit returns the node as a split, or nil for a leaf.
	AsSplit() *Split

	// AsLeaf returns the node as a leaf, or nil for a split.
	AsLeaf() *Leaf

	setParent(p *Split)
	seedGeometry(r geometry.Rect)
}

// DefaultOutputGeometry is the fallback area used for layout before the
// real output resolution is known.
var DefaultOutputGeometry = geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

// base carries the state shared by splits and leaves.
type base struct {
	parent *Split
	geo    geometry.Rect
	gaps   Gaps
}

func (b *base) Parent() *Split          { return b.parent }
func (b *base) Geometry() geometry.Rect { return b.geo }
func (b *base) Gaps() Gaps              { return b.gaps }

// SetGaps stores the spec as-is. Split shadows this with downward
// composition.
func (b *base) SetGaps(g Gaps) { b.gaps = g }

func (b *base) setParent(p *Split) { b.parent = p }

// seedGeometry records a rectangle without propagating it. Used to give a
// freshly inserted child a weight before the proportional pass runs.
func (b *base) seedGeometry(r geometry.Rect) { b.geo = r }

// Root walks parent links to the top of the tree. The root is always a
// split; it is created with the workspace and never removed.
func Root(n Node) *Split {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n.AsSplit()
}
