// Package workspace owns one layout tree per display: the root split,
// the view registry, the configured gaps, and the work area the tree is
// laid out into.
package workspace

import (
	"fmt"
	"sync"
	"time"

	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/tree"
	"github.com/panetile/panetile/internal/view"
)

// Workspace is the owning layer around a layout tree. All methods are
// safe for concurrent use; the daemon loop and IPC handlers share it.
type Workspace struct {
	mu        sync.Mutex
	displayID int
	name      string
	area      geometry.Rect
	areaKnown bool
	gaps      tree.Gaps
	animation time.Duration
	root      *tree.Split
	registry  *tree.Registry
}

// New creates a workspace for a display. Until SetArea reports the real
// work area, layout uses the default output geometry.
func New(displayID int, name string, dir tree.Direction, gaps tree.Gaps, animation time.Duration) *Workspace {
	w := &Workspace{
		displayID: displayID,
		name:      name,
		area:      tree.DefaultOutputGeometry,
		gaps:      gaps,
		animation: animation,
		root:      tree.NewSplit(dir),
		registry:  tree.NewRegistry(),
	}
	w.root.SetGaps(w.treeGaps())
	w.root.SetGeometry(w.innerArea(), nil)
	return w
}

// DisplayID returns the display this workspace tiles.
func (w *Workspace) DisplayID() int { return w.displayID }

// Name returns the display name.
func (w *Workspace) Name() string { return w.name }

// Root returns the root split. The root exists from creation and is
// never removed.
func (w *Workspace) Root() *tree.Split { return w.root }

// Area returns the current work area in screen coordinates.
func (w *Workspace) Area() geometry.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.area
}

// AreaKnown reports whether a real work area has replaced the default.
func (w *Workspace) AreaKnown() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.areaKnown
}

// Origin returns the screen position of the work area, the offset
// between screen and workspace-local coordinates.
func (w *Workspace) Origin() geometry.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return geometry.Point{X: w.area.X, Y: w.area.Y}
}

// SetArea installs the display's work area and retiles. Passing the same
// area is a no-op.
func (w *Workspace) SetArea(area geometry.Rect, tx tree.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.areaKnown && area == w.area {
		return
	}
	w.area = area
	w.areaKnown = true
	w.root.SetGeometry(w.innerArea(), tx)
}

// Gaps returns the configured gap spec.
func (w *Workspace) Gaps() tree.Gaps {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gaps
}

// SetGaps installs a new gap spec and retiles. The outer gaps shrink the
// rectangle handed to the root; only the internal gap travels down the
// tree, so outer edges are applied exactly once.
func (w *Workspace) SetGaps(g tree.Gaps, tx tree.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gaps = g
	w.root.SetGaps(w.treeGaps())
	w.root.SetGeometry(w.innerArea(), tx)
}

// Attach wraps the view in a leaf and adds it to the root split. The
// existing children give up a proportional share.
func (w *Workspace) Attach(v view.View, tx tree.Transaction) (*tree.Leaf, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.registry.Leaf(v) != nil {
		return nil, fmt.Errorf("attach: view already managed")
	}
	leaf := tree.NewLeaf(v, w.registry, tree.LeafConfig{
		AnimationDuration: w.animation,
		OutputGeometry:    func() geometry.Rect { return w.area },
	})
	w.root.AddChild(leaf, tx)
	return leaf, nil
}

// Detach removes the view's leaf, destroys it, flattens any structure
// left redundant, and retiles the survivors.
func (w *Workspace) Detach(v view.View, tx tree.Transaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	leaf := w.registry.Leaf(v)
	if leaf == nil {
		return fmt.Errorf("detach: view not managed by this workspace")
	}
	parent := leaf.Parent()
	if parent == nil {
		return fmt.Errorf("detach: leaf has no parent")
	}
	if err := parent.RemoveChild(leaf, tx); err != nil {
		return err
	}
	leaf.Destroy()
	tree.Flatten(w.root)
	w.root.SetGeometry(w.innerArea(), tx)
	return nil
}

// Leaf returns the leaf managing the view, or nil.
func (w *Workspace) Leaf(v view.View) *tree.Leaf {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.Leaf(v)
}

// Views returns the managed views in unspecified order.
func (w *Workspace) Views() []view.View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.Views()
}

// Len returns the number of managed views.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.Len()
}

// Retile re-applies the work area to the whole tree.
func (w *Workspace) Retile(tx tree.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.root.SetGeometry(w.innerArea(), tx)
}

// Advance drives the resize crossfades forward by dt and reports whether
// any animation is still running.
func (w *Workspace) Advance(dt time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	running := false
	for _, v := range w.registry.Views() {
		if l := w.registry.Leaf(v); l != nil && l.AdvanceAnimation(dt) {
			running = true
		}
	}
	return running
}

// innerArea is the rectangle handed to the root: the work area shrunk by
// the outer gaps.
func (w *Workspace) innerArea() geometry.Rect {
	return w.area.Shrink(w.gaps.Left, w.gaps.Right, w.gaps.Top, w.gaps.Bottom)
}

// treeGaps is the spec pushed into the tree: internal only, since the
// outer edges are already absorbed into the root geometry.
func (w *Workspace) treeGaps() tree.Gaps {
	return tree.Gaps{Internal: w.gaps.Internal}
}
