// Package view defines the contract between the layout tree and the
// windows it manages. The tree treats views as opaque: it reads their
// state and assigns geometry, nothing more.
package view

import "github.com/panetile/panetile/internal/geometry"

// View is a window (or any other payload) managed by a tree leaf.
//
// Implementations must be comparable (pointer receivers are fine); views
// are used as map keys by the leaf registry.
type View interface {
	// Geometry returns the view's current on-screen rectangle.
	Geometry() geometry.Rect

	// SetGeometry moves and resizes the view.
	SetGeometry(geometry.Rect) error

	// Fullscreen reports whether the view is in fullscreen state. A
	// fullscreen view keeps its full assigned rectangle; gaps are not
	// applied to it.
	Fullscreen() bool

	// Mapped reports whether the view is currently visible. Unmapped
	// views still receive geometry but are never animated.
	Mapped() bool

	// OnGeometryChanged registers a callback fired whenever the view's
	// geometry changes outside the tree's control. The returned func
	// cancels the subscription.
	OnGeometryChanged(fn func()) (cancel func())
}
