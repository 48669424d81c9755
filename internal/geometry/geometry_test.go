package geometry

import "testing"

func TestShrink(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 800, Height: 600}
	got := r.Shrink(10, 20, 5, 15)
	want := Rect{X: 110, Y: 55, Width: 770, Height: 580}
	if got != want {
		t.Fatalf("Shrink: got %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Fatalf("expected top-left corner to be inside")
	}
	if r.Contains(Point{X: 100, Y: 0}) {
		t.Fatalf("right edge is exclusive, point should be outside")
	}
	if r.Contains(Point{X: 50, Y: -1}) {
		t.Fatalf("point above rect should be outside")
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}
	got := a.Intersect(b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Fatalf("Intersect: got %v, want %v", got, want)
	}

	c := Rect{X: 200, Y: 0, Width: 10, Height: 10}
	if !a.Intersect(c).Empty() {
		t.Fatalf("disjoint rects must intersect to empty")
	}
	if a.Overlaps(c) {
		t.Fatalf("disjoint rects reported overlapping")
	}
}

func TestEmpty(t *testing.T) {
	if (Rect{Width: 10, Height: 10}).Empty() {
		t.Fatalf("10x10 rect reported empty")
	}
	if !(Rect{Width: 10, Height: 0}).Empty() {
		t.Fatalf("zero-height rect not reported empty")
	}
	// Oversized gaps can drive extents negative.
	if !(Rect{Width: -5, Height: 10}).Empty() {
		t.Fatalf("negative-width rect not reported empty")
	}
}
