package tree

import (
	"log"
	"time"

	"github.com/panetile/panetile/internal/anim"
	"github.com/panetile/panetile/internal/geometry"
)

// LeafConfig carries the per-leaf knobs the owning workspace decides.
type LeafConfig struct {
	// AnimationDuration enables a crossfade when a mapped view's size
	// changes outside a transaction. Zero disables animation.
	AnimationDuration time.Duration

	// OutputGeometry, when set, supplies the rectangle handed to
	// fullscreen views. Without it a fullscreen view keeps the leaf's
	// full assigned rectangle.
	OutputGeometry func() geometry.Rect
}

// Leaf is a terminal node wrapping a single view. The leaf resolves the
// view's target rectangle from its assigned geometry and gaps, keeps the
// view pinned to that rectangle, and runs the optional resize crossfade.
type Leaf struct {
	base
	view        View
	reg         *Registry
	fade        *anim.Crossfade
	duration    time.Duration
	output      func() geometry.Rect
	unsubscribe func()
}

// NewLeaf wraps a view in a leaf, registers it, and subscribes to the
// view's geometry changes so external moves are steered back into the
// layout.
func NewLeaf(v View, reg *Registry, cfg LeafConfig) *Leaf {
	l := &Leaf{
		view:     v,
		reg:      reg,
		duration: cfg.AnimationDuration,
		output:   cfg.OutputGeometry,
	}
	if reg != nil && v != nil {
		reg.put(v, l)
	}
	if v != nil {
		l.unsubscribe = v.OnGeometryChanged(l.viewGeometryChanged)
	}
	return l
}

// View returns the wrapped view.
func (l *Leaf) View() View { return l.view }

func (l *Leaf) AsSplit() *Split { return nil }
func (l *Leaf) AsLeaf() *Leaf   { return l }

// SetGeometry records the assigned rectangle and pushes the resolved
// target into tx, or applies it directly when tx is nil.
func (l *Leaf) SetGeometry(r geometry.Rect, tx Transaction) {
	l.geo = r
	if l.view == nil {
		return
	}
	target := l.TargetGeometry()
	if tx != nil {
		// The transaction owns this move now; a crossfade still running
		// toward the previous target must not keep applying it.
		l.fade = nil
		tx.AddGeometry(l.view, target)
		return
	}
	if err := l.apply(target); err != nil {
		log.Printf("leaf: apply geometry %v: %v", target, err)
	}
}

// ApplyTarget applies a committed target rectangle to the view, starting
// a crossfade when the change warrants one. Owners that commit a batch
// route each assignment through here so resizes still animate.
func (l *Leaf) ApplyTarget(target geometry.Rect) error {
	if l.view == nil {
		return nil
	}
	return l.apply(target)
}

// TargetGeometry resolves the rectangle the view should occupy: the
// assigned geometry shrunk by this leaf's gaps, or the full output
// rectangle while the view is fullscreen.
func (l *Leaf) TargetGeometry() geometry.Rect {
	if l.view != nil && l.view.Fullscreen() {
		if l.output != nil {
			return l.output()
		}
		return l.geo
	}
	g := l.gaps
	return l.geo.Shrink(g.Left, g.Right, g.Top, g.Bottom)
}

func (l *Leaf) apply(target geometry.Rect) error {
	current := l.view.Geometry()
	if l.fade != nil && l.fade.Running() {
		current = l.fade.Current()
	}
	if current == target {
		return nil
	}
	if l.needsCrossfade(current, target) {
		if l.fade == nil {
			l.fade = anim.NewCrossfade(l.duration)
		}
		l.fade.Start(current, target)
		return nil
	}
	l.fade = nil
	return l.view.SetGeometry(target)
}

// needsCrossfade decides whether a geometry change is animated: only
// mapped, non-fullscreen views whose size (not just position) changes.
func (l *Leaf) needsCrossfade(current, target geometry.Rect) bool {
	if l.duration <= 0 {
		return false
	}
	if !l.view.Mapped() || l.view.Fullscreen() {
		return false
	}
	return current.Width != target.Width || current.Height != target.Height
}

// Animating reports whether a crossfade is in flight.
func (l *Leaf) Animating() bool {
	return l.fade != nil && l.fade.Running()
}

// AdvanceAnimation moves a running crossfade forward by dt and applies
// the interpolated rectangle to the view. It reports whether the
// animation is still running afterwards; the crossfade detaches once it
// completes.
func (l *Leaf) AdvanceAnimation(dt time.Duration) bool {
	if l.fade == nil || !l.fade.Running() {
		return false
	}
	still := l.fade.Advance(dt)
	if err := l.view.SetGeometry(l.fade.Current()); err != nil {
		log.Printf("leaf: animate geometry: %v", err)
	}
	if !still {
		l.fade = nil
	}
	return still
}

// viewGeometryChanged fires when the view's geometry changes outside the
// tree's control. The view is steered back to its slot; updates produced
// by a running crossfade are our own and pass through.
func (l *Leaf) viewGeometryChanged() {
	if l.view == nil {
		return
	}
	if l.fade != nil && l.fade.Running() {
		return
	}
	target := l.TargetGeometry()
	if l.view.Geometry() == target {
		return
	}
	if err := l.view.SetGeometry(target); err != nil {
		log.Printf("leaf: restore geometry %v: %v", target, err)
	}
}

// Destroy releases the registry entry and the geometry subscription. The
// leaf must already be detached from its parent split.
func (l *Leaf) Destroy() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	if l.reg != nil && l.view != nil {
		l.reg.drop(l.view)
	}
	l.fade = nil
	l.view = nil
}
