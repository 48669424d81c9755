// Package anim provides the geometry crossfade used when tiled windows
// resize. The crossfade is a passive state machine: it never schedules
// anything itself, an external frame loop advances it and applies the
// interpolated rectangle.
package anim

import (
	"time"

	"github.com/panetile/panetile/internal/geometry"
)

// Crossfade interpolates a rectangle from one geometry to another over a
// fixed duration with integer linear interpolation.
type Crossfade struct {
	duration time.Duration
	elapsed  time.Duration
	from     geometry.Rect
	to       geometry.Rect
	running  bool
}

// NewCrossfade creates an idle crossfade with the given duration. A zero
// or negative duration produces a crossfade that completes immediately.
func NewCrossfade(d time.Duration) *Crossfade {
	return &Crossfade{duration: d}
}

// Start arms the crossfade. Restarting while one is already running
// retargets from the currently interpolated rectangle, so a rapid series
// of resizes stays continuous.
func (c *Crossfade) Start(from, to geometry.Rect) {
	if c.running {
		from = c.Current()
	}
	c.from = from
	c.to = to
	c.elapsed = 0
	c.running = c.duration > 0 && from != to
}

// Advance moves the crossfade forward by dt and reports whether it is
// still running afterwards.
func (c *Crossfade) Advance(dt time.Duration) bool {
	if !c.running {
		return false
	}
	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.elapsed = c.duration
		c.running = false
	}
	return c.running
}

// Running reports whether the crossfade is mid-flight.
func (c *Crossfade) Running() bool { return c.running }

// Target returns the destination rectangle of the most recent Start.
func (c *Crossfade) Target() geometry.Rect { return c.to }

// Current returns the interpolated rectangle for the elapsed time. Once
// the crossfade completes it returns the target exactly.
func (c *Crossfade) Current() geometry.Rect {
	if !c.running {
		return c.to
	}
	num, den := int64(c.elapsed), int64(c.duration)
	return geometry.Rect{
		X:      lerp(c.from.X, c.to.X, num, den),
		Y:      lerp(c.from.Y, c.to.Y, num, den),
		Width:  lerp(c.from.Width, c.to.Width, num, den),
		Height: lerp(c.from.Height, c.to.Height, num, den),
	}
}

func lerp(a, b int, num, den int64) int {
	if den <= 0 {
		return b
	}
	return a + int(int64(b-a)*num/den)
}
