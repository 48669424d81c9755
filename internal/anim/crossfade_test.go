package anim

import (
	"testing"
	"time"

	"github.com/panetile/panetile/internal/geometry"
)

func TestCrossfadeInterpolates(t *testing.T) {
	c := NewCrossfade(100 * time.Millisecond)
	from := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	to := geometry.Rect{X: 100, Y: 0, Width: 200, Height: 100}
	c.Start(from, to)
	if !c.Running() {
		t.Fatalf("crossfade not running after Start")
	}

	c.Advance(50 * time.Millisecond)
	mid := c.Current()
	// Halfway: X=50, Width=150.
	if mid.X != 50 || mid.Width != 150 {
		t.Fatalf("midpoint: got %v, want X=50 Width=150", mid)
	}

	still := c.Advance(50 * time.Millisecond)
	if still {
		t.Fatalf("crossfade still running after full duration")
	}
	if c.Current() != to {
		t.Fatalf("final rect %v, want %v", c.Current(), to)
	}
}

func TestCrossfadeRetargetsMidFlight(t *testing.T) {
	c := NewCrossfade(100 * time.Millisecond)
	from := geometry.Rect{Width: 100, Height: 100}
	to := geometry.Rect{Width: 200, Height: 100}
	c.Start(from, to)
	c.Advance(50 * time.Millisecond)

	next := geometry.Rect{Width: 300, Height: 100}
	c.Start(c.Target(), next)
	// A restart must continue from the interpolated rect (150 wide), not
	// snap back to the original origin.
	got := c.Current()
	if got.Width != 150 {
		t.Fatalf("retarget start width: got %d, want 150", got.Width)
	}
	c.Advance(100 * time.Millisecond)
	if c.Current() != next {
		t.Fatalf("retarget final: got %v, want %v", c.Current(), next)
	}
}

func TestCrossfadeZeroDurationCompletesImmediately(t *testing.T) {
	c := NewCrossfade(0)
	to := geometry.Rect{Width: 50, Height: 50}
	c.Start(geometry.Rect{Width: 10, Height: 10}, to)
	if c.Running() {
		t.Fatalf("zero-duration crossfade should not run")
	}
	if c.Current() != to {
		t.Fatalf("zero-duration crossfade: got %v, want %v", c.Current(), to)
	}
}

func TestCrossfadeNoopWhenRectsEqual(t *testing.T) {
	c := NewCrossfade(100 * time.Millisecond)
	r := geometry.Rect{Width: 100, Height: 100}
	c.Start(r, r)
	if c.Running() {
		t.Fatalf("crossfade between identical rects should not run")
	}
}
