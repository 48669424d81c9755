// Package platform abstracts window-system operations behind the Backend
// interface so the daemon and workspace layers stay free of X11 types.
package platform

import "github.com/panetile/panetile/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds geometry.Rect
	Usable geometry.Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	Class  string
	Title  string
	Bounds geometry.Rect
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)
	MoveResize(windowID WindowID, bounds geometry.Rect) error
	WindowGeometry(windowID WindowID) (geometry.Rect, error)
	WindowFullscreen(windowID WindowID) (bool, error)
	WindowMapped(windowID WindowID) (bool, error)
}
