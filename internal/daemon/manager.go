// Package daemon runs the reconcile loop that keeps the on-screen
// windows and the layout trees in agreement.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panetile/panetile/internal/config"
	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/platform"
	"github.com/panetile/panetile/internal/tree"
	"github.com/panetile/panetile/internal/txn"
	"github.com/panetile/panetile/internal/view"
	"github.com/panetile/panetile/internal/workspace"
)

// frameInterval is the tick rate for resize crossfades.
const frameInterval = 16 * time.Millisecond

// Manager owns one workspace per display and reconciles them against the
// backend's window list.
type Manager struct {
	mu         sync.Mutex
	backend    platform.Backend
	cfg        *config.Config
	logger     *slog.Logger
	workspaces map[int]*workspace.Workspace
	views      map[platform.WindowID]*platform.WindowView
	assigned   map[platform.WindowID]*workspace.Workspace
}

// NewManager creates a manager over the given backend.
func NewManager(backend platform.Backend, cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		backend:    backend,
		cfg:        cfg,
		logger:     logger,
		workspaces: make(map[int]*workspace.Workspace),
		views:      make(map[platform.WindowID]*platform.WindowView),
		assigned:   make(map[platform.WindowID]*workspace.Workspace),
	}
}

// Run starts the reconcile and animation loops. Blocks until the context
// is cancelled.
func (m *Manager) Run(ctx context.Context) {
	reconcile := time.NewTicker(m.cfg.ReconcileInterval())
	defer reconcile.Stop()
	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	m.logger.Info("manager started", "interval", m.cfg.ReconcileInterval())
	m.Reconcile()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("manager stopped")
			return
		case <-reconcile.C:
			m.Reconcile()
		case <-frames.C:
			m.advanceAnimations(frameInterval)
		}
	}
}

// Reconcile performs a single pass over the active display: new windows
// are attached, vanished ones detached, the work area refreshed, and all
// resulting geometry committed in one batch.
func (m *Manager) Reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			m.logger.Error("reconcile panic recovered", "error", err)
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	display, err := m.backend.ActiveDisplay()
	if err != nil {
		m.logger.Error("reconcile: failed to get active display", "error", err)
		return
	}

	windows, err := m.backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		m.logger.Error("reconcile: failed to list windows", "error", err)
		return
	}

	ws := m.workspaceFor(display)
	batch := txn.NewBatch()
	ws.SetArea(display.Usable, batch)

	present := make(map[platform.WindowID]platform.Window, len(windows))
	for _, w := range windows {
		present[w.ID] = w
	}

	// Attach newcomers.
	for _, w := range windows {
		if _, managed := m.views[w.ID]; managed {
			continue
		}
		if m.cfg.Ignored(w.Class) {
			continue
		}
		wv := platform.NewWindowView(m.backend, w)
		if _, err := ws.Attach(wv, batch); err != nil {
			m.logger.Warn("reconcile: attach failed", "window", w.ID, "error", err)
			continue
		}
		m.views[w.ID] = wv
		m.assigned[w.ID] = ws
		m.logger.Info("window attached", "window", w.ID, "class", w.Class)
	}

	// Detach windows that left this workspace's display.
	for id, owner := range m.assigned {
		if owner != ws {
			continue
		}
		if _, ok := present[id]; ok {
			continue
		}
		wv := m.views[id]
		if err := ws.Detach(wv, batch); err != nil {
			m.logger.Warn("reconcile: detach failed", "window", id, "error", err)
		}
		delete(m.views, id)
		delete(m.assigned, id)
		m.logger.Info("window detached", "window", id)
	}

	if err := m.commitBatch(batch); err != nil {
		m.logger.Warn("reconcile: commit failed", "error", err)
	}

	// Steer windows that drifted from their slots since the last pass.
	for id := range present {
		wv, ok := m.views[id]
		if !ok {
			continue
		}
		leaf := ws.Leaf(wv)
		if leaf == nil || leaf.Animating() {
			continue
		}
		if wv.Geometry() != leaf.TargetGeometry() {
			wv.NotifyGeometryChanged()
		}
	}
}

// Retile re-applies every workspace's area to its tree.
func (m *Manager) Retile() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := txn.NewBatch()
	for _, ws := range m.workspaces {
		ws.Retile(batch)
	}
	return m.commitBatch(batch)
}

// commitBatch applies a batch through the owning leaves, so a resize
// still starts its crossfade. Views no longer in any layout fall back to
// a direct apply. Callers hold m.mu.
func (m *Manager) commitBatch(batch *txn.Batch) error {
	return batch.CommitWith(func(v view.View, target geometry.Rect) error {
		for _, ws := range m.workspaces {
			if leaf := ws.Leaf(v); leaf != nil {
				return leaf.ApplyTarget(target)
			}
		}
		return v.SetGeometry(target)
	})
}

// SetGaps installs a gap spec on every workspace and retiles.
func (m *Manager) SetGaps(g tree.Gaps) error {
	if g.Left < 0 || g.Right < 0 || g.Top < 0 || g.Bottom < 0 || g.Internal < 0 {
		return fmt.Errorf("set gaps: values must be >= 0")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Gaps = config.GapConfig{
		Left:     g.Left,
		Right:    g.Right,
		Top:      g.Top,
		Bottom:   g.Bottom,
		Internal: g.Internal,
	}
	batch := txn.NewBatch()
	for _, ws := range m.workspaces {
		ws.SetGaps(g, batch)
	}
	return m.commitBatch(batch)
}

// Reload re-reads the configuration file and applies the gap and ignore
// settings. The animation duration applies to newly attached windows.
func (m *Manager) Reload() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	m.logger.Info("configuration reloaded")
	return m.SetGaps(tree.Gaps{
		Left:     cfg.Gaps.Left,
		Right:    cfg.Gaps.Right,
		Top:      cfg.Gaps.Top,
		Bottom:   cfg.Gaps.Bottom,
		Internal: cfg.Gaps.Internal,
	})
}

// WorkspaceStatus summarizes one workspace for status surfaces.
type WorkspaceStatus struct {
	DisplayID int                `json:"display_id"`
	Display   string             `json:"display"`
	Windows   int                `json:"windows"`
	Area      workspace.RectInfo `json:"area"`
}

// Status summarizes the manager state.
type Status struct {
	Workspaces   []WorkspaceStatus `json:"workspaces"`
	TotalWindows int               `json:"total_windows"`
}

// TreeDump is a full tree snapshot for one display.
type TreeDump struct {
	DisplayID int                `json:"display_id"`
	Display   string             `json:"display"`
	Root      workspace.NodeInfo `json:"root"`
}

// Status reports per-workspace window counts and areas.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st Status
	for _, ws := range m.workspaces {
		area := ws.Area()
		st.Workspaces = append(st.Workspaces, WorkspaceStatus{
			DisplayID: ws.DisplayID(),
			Display:   ws.Name(),
			Windows:   ws.Len(),
			Area: workspace.RectInfo{
				X: area.X, Y: area.Y, Width: area.Width, Height: area.Height,
			},
		})
		st.TotalWindows += ws.Len()
	}
	return st
}

// Trees snapshots every workspace's layout tree.
func (m *Manager) Trees() []TreeDump {
	m.mu.Lock()
	defer m.mu.Unlock()
	var dumps []TreeDump
	for _, ws := range m.workspaces {
		dumps = append(dumps, TreeDump{
			DisplayID: ws.DisplayID(),
			Display:   ws.Name(),
			Root:      ws.Describe(),
		})
	}
	return dumps
}

func (m *Manager) advanceAnimations(dt time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ws := range m.workspaces {
		ws.Advance(dt)
	}
}

// workspaceFor returns the workspace owning a display, creating it on
// first sight.
func (m *Manager) workspaceFor(d platform.Display) *workspace.Workspace {
	if ws, ok := m.workspaces[d.ID]; ok {
		return ws
	}
	ws := workspace.New(d.ID, d.Name, splitDirection(m.cfg.Split), tree.Gaps{
		Left:     m.cfg.Gaps.Left,
		Right:    m.cfg.Gaps.Right,
		Top:      m.cfg.Gaps.Top,
		Bottom:   m.cfg.Gaps.Bottom,
		Internal: m.cfg.Gaps.Internal,
	}, m.cfg.AnimationDuration())
	m.workspaces[d.ID] = ws
	m.logger.Info("workspace created", "display", d.Name, "area", d.Usable)
	return ws
}

func splitDirection(s string) tree.Direction {
	if s == "vertical" {
		return tree.Vertical
	}
	return tree.Horizontal
}
