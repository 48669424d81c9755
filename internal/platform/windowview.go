package platform

import (
	"fmt"

	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/view"
)

// WindowView adapts a backend window to the view contract the layout
// tree consumes. State queries go straight to the backend; the last known
// geometry is cached so a dropped query does not report a zero rect.
type WindowView struct {
	backend Backend
	id      WindowID
	class   string
	title   string
	cached  geometry.Rect

	nextSub int
	subs    map[int]func()
}

var _ view.View = (*WindowView)(nil)

// NewWindowView wraps a window reported by the backend.
func NewWindowView(b Backend, w Window) *WindowView {
	return &WindowView{
		backend: b,
		id:      w.ID,
		class:   w.Class,
		title:   w.Title,
		cached:  w.Bounds,
		subs:    make(map[int]func()),
	}
}

// ID returns the underlying window identifier.
func (v *WindowView) ID() WindowID { return v.id }

// Class returns the window's WM_CLASS class name.
func (v *WindowView) Class() string { return v.class }

// Title returns the window title seen at wrap time.
func (v *WindowView) Title() string { return v.title }

// Label names the window in tree dumps: "0x2a00004 (Alacritty)".
func (v *WindowView) Label() string {
	if v.class == "" {
		return fmt.Sprintf("0x%x", uint32(v.id))
	}
	return fmt.Sprintf("0x%x (%s)", uint32(v.id), v.class)
}

// Geometry returns the window's current rectangle, or the last known one
// when the query fails (window mid-destroy).
func (v *WindowView) Geometry() geometry.Rect {
	if r, err := v.backend.WindowGeometry(v.id); err == nil {
		v.cached = r
	}
	return v.cached
}

// SetGeometry moves and resizes the window. Extents are clamped to one
// pixel; the X server rejects zero-sized windows.
func (v *WindowView) SetGeometry(r geometry.Rect) error {
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	if err := v.backend.MoveResize(v.id, r); err != nil {
		return err
	}
	v.cached = r
	return nil
}

// Fullscreen reports whether the window carries the fullscreen state.
func (v *WindowView) Fullscreen() bool {
	fs, err := v.backend.WindowFullscreen(v.id)
	return err == nil && fs
}

// Mapped reports whether the window is viewable. Query failures count as
// mapped so a flaky window is still laid out.
func (v *WindowView) Mapped() bool {
	mapped, err := v.backend.WindowMapped(v.id)
	if err != nil {
		return true
	}
	return mapped
}

// OnGeometryChanged registers a callback fired by NotifyGeometryChanged.
func (v *WindowView) OnGeometryChanged(fn func()) func() {
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	return func() { delete(v.subs, id) }
}

// NotifyGeometryChanged fires the geometry subscriptions. The daemon
// calls this when its reconcile pass sees the window moved outside the
// layout's control.
func (v *WindowView) NotifyGeometryChanged() {
	for _, fn := range v.subs {
		fn()
	}
}
