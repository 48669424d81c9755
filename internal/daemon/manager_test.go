package daemon

import (
	"io"
	"log/slog"
	"testing"

	"github.com/panetile/panetile/internal/config"
	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/platform"
	"github.com/panetile/panetile/internal/tree"
)

// fakeBackend is an in-memory window system for reconcile tests.
type fakeBackend struct {
	display platform.Display
	windows []platform.Window
	geos    map[platform.WindowID]geometry.Rect
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		display: platform.Display{
			ID:     0,
			Name:   "fake-0",
			Bounds: geometry.Rect{Width: 1920, Height: 1080},
			Usable: geometry.Rect{Width: 1920, Height: 1080},
		},
		geos: make(map[platform.WindowID]geometry.Rect),
	}
}

func (f *fakeBackend) addWindow(id platform.WindowID, class string) {
	f.windows = append(f.windows, platform.Window{ID: id, Class: class})
	f.geos[id] = geometry.Rect{}
}

func (f *fakeBackend) removeWindow(id platform.WindowID) {
	out := f.windows[:0]
	for _, w := range f.windows {
		if w.ID != id {
			out = append(out, w)
		}
	}
	f.windows = out
	delete(f.geos, id)
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{f.display}, nil
}

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	return f.display, nil
}

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	if len(f.windows) == 0 {
		return 0, nil
	}
	return f.windows[0].ID, nil
}

func (f *fakeBackend) ListWindowsOnDisplay(int) ([]platform.Window, error) {
	return append([]platform.Window(nil), f.windows...), nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds geometry.Rect) error {
	f.geos[id] = bounds
	return nil
}

func (f *fakeBackend) WindowGeometry(id platform.WindowID) (geometry.Rect, error) {
	return f.geos[id], nil
}

func (f *fakeBackend) WindowFullscreen(platform.WindowID) (bool, error) { return false, nil }
func (f *fakeBackend) WindowMapped(platform.WindowID) (bool, error)     { return true, nil }

func newTestManager(backend platform.Backend) *Manager {
	cfg := config.DefaultConfig()
	cfg.Animation.DurationMs = 0
	cfg.IgnoreClasses = []string{"Polybar"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(backend, cfg, logger)
}

func TestReconcileAttachesAndTiles(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")
	backend.addWindow(2, "Alacritty")

	m := newTestManager(backend)
	m.Reconcile()

	if got := backend.geos[1]; got.Width != 960 || got.Height != 1080 {
		t.Fatalf("window 1 geometry: %v", got)
	}
	if got := backend.geos[2]; got.X != 960 || got.Width != 960 {
		t.Fatalf("window 2 geometry: %v", got)
	}

	st := m.Status()
	if st.TotalWindows != 2 {
		t.Fatalf("status windows: %d, want 2", st.TotalWindows)
	}
}

func TestReconcileDetachesVanishedWindows(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")
	backend.addWindow(2, "Alacritty")

	m := newTestManager(backend)
	m.Reconcile()

	backend.removeWindow(1)
	m.Reconcile()

	if got := backend.geos[2]; got.Width != 1920 {
		t.Fatalf("survivor not retiled: %v", got)
	}
	if st := m.Status(); st.TotalWindows != 1 {
		t.Fatalf("status windows: %d, want 1", st.TotalWindows)
	}
}

func TestReconcileSkipsIgnoredClasses(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")
	backend.addWindow(2, "Polybar")

	m := newTestManager(backend)
	m.Reconcile()

	// The ignored window is never moved; the managed one gets everything.
	if got := backend.geos[1]; got.Width != 1920 {
		t.Fatalf("managed window geometry: %v", got)
	}
	if got := backend.geos[2]; got.Width != 0 {
		t.Fatalf("ignored window was moved: %v", got)
	}
}

func TestReconcileSteersDriftedWindows(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")

	m := newTestManager(backend)
	m.Reconcile()

	// The window moves itself between passes.
	backend.geos[1] = geometry.Rect{X: 33, Y: 44, Width: 500, Height: 500}
	m.Reconcile()

	if got := backend.geos[1]; got.Width != 1920 || got.X != 0 {
		t.Fatalf("drifted window not steered back: %v", got)
	}
}

// settleAnimations drives the frame loop until every crossfade finishes.
func settleAnimations(m *Manager) {
	for i := 0; i < 64; i++ {
		m.mu.Lock()
		running := false
		for _, ws := range m.workspaces {
			if ws.Advance(frameInterval) {
				running = true
			}
		}
		m.mu.Unlock()
		if !running {
			return
		}
	}
}

func TestReconcileCrossfadesResizes(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")

	m := newTestManager(backend)
	m.cfg.Animation.DurationMs = 200
	m.Reconcile()
	settleAnimations(m)

	if got := backend.geos[1]; got.Width != 1920 {
		t.Fatalf("window 1 not settled: %v", got)
	}

	// A second window halves the first one's slot. The resize must run
	// through the crossfade, not land instantly.
	backend.addWindow(2, "Alacritty")
	m.Reconcile()

	if got := backend.geos[1]; got.Width != 1920 {
		t.Fatalf("resize applied instantly, want crossfade: %v", got)
	}

	m.advanceAnimations(frameInterval)
	mid := backend.geos[1].Width
	if mid >= 1920 || mid <= 960 {
		t.Fatalf("first tick width %d, want between 960 and 1920", mid)
	}

	settleAnimations(m)
	if got := backend.geos[1]; got != (geometry.Rect{Width: 960, Height: 1080}) {
		t.Fatalf("window 1 final geometry: %v", got)
	}
	if got := backend.geos[2]; got.X != 960 || got.Width != 960 {
		t.Fatalf("window 2 final geometry: %v", got)
	}
}

func TestReconcileAppliesInstantlyWithoutDuration(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")
	backend.addWindow(2, "Alacritty")

	m := newTestManager(backend)
	m.Reconcile()

	// duration_ms is zero: geometry lands on commit, no frames needed.
	if got := backend.geos[1]; got.Width != 960 {
		t.Fatalf("window 1 geometry: %v", got)
	}
	if got := backend.geos[2]; got.X != 960 || got.Width != 960 {
		t.Fatalf("window 2 geometry: %v", got)
	}
}

func TestSetGapsRetilesAllWorkspaces(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")

	m := newTestManager(backend)
	m.Reconcile()

	if err := m.SetGaps(tree.Gaps{Left: 10, Right: 10, Top: 10, Bottom: 10}); err != nil {
		t.Fatalf("set gaps: %v", err)
	}
	want := geometry.Rect{X: 10, Y: 10, Width: 1900, Height: 1060}
	if got := backend.geos[1]; got != want {
		t.Fatalf("gapped geometry: got %v, want %v", got, want)
	}

	if err := m.SetGaps(tree.Gaps{Left: -1}); err == nil {
		t.Fatalf("negative gaps must be rejected")
	}
}

func TestTreesSnapshot(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(1, "Firefox")
	backend.addWindow(2, "Alacritty")

	m := newTestManager(backend)
	m.Reconcile()

	dumps := m.Trees()
	if len(dumps) != 1 {
		t.Fatalf("dump count %d, want 1", len(dumps))
	}
	root := dumps[0].Root
	if root.Kind != "split" || len(root.Children) != 2 {
		t.Fatalf("root dump: %+v", root)
	}
}
