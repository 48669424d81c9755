package tree

import "github.com/panetile/panetile/internal/geometry"

// Flatten collapses redundant structure under root: any split whose only
// child is itself a split is replaced by that child, recursively. The
// root itself is never replaced, even when it has a single split child,
// so the tree always keeps a split at the top. Flatten reports whether
// any leaf remains under root. It does not touch geometry; callers
// re-apply the root geometry after structural edits.
func Flatten(root *Split) bool {
	flattenChildren(root)
	return hasLeaves(root)
}

func flattenChildren(s *Split) {
	for i, c := range s.children {
		cs := c.AsSplit()
		if cs == nil {
			continue
		}
		flattenChildren(cs)
		// Splice chains of single-split-child splits in place.
		for len(cs.children) == 1 {
			inner := cs.children[0].AsSplit()
			if inner == nil {
				break
			}
			inner.setParent(s)
			s.children[i] = inner
			cs.children = nil
			cs.setParent(nil)
			cs = inner
		}
	}
}

func hasLeaves(s *Split) bool {
	for _, c := range s.children {
		if c.AsLeaf() != nil {
			return true
		}
		if hasLeaves(c.AsSplit()) {
			return true
		}
	}
	return false
}

// ToLocal converts a screen-space rectangle into workspace-local
// coordinates given the workspace origin.
func ToLocal(origin geometry.Point, r geometry.Rect) geometry.Rect {
	return r.Translate(-origin.X, -origin.Y)
}

// FromLocal converts a workspace-local rectangle back to screen space.
func FromLocal(origin geometry.Point, r geometry.Rect) geometry.Rect {
	return r.Translate(origin.X, origin.Y)
}

// PointToLocal converts a screen-space point into workspace-local
// coordinates.
func PointToLocal(origin, p geometry.Point) geometry.Point {
	return geometry.Point{X: p.X - origin.X, Y: p.Y - origin.Y}
}
