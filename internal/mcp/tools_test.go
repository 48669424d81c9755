package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/panetile/panetile/internal/daemon"
	"github.com/panetile/panetile/internal/ipc"
	"github.com/panetile/panetile/internal/workspace"
)

type fakeClient struct {
	status  *ipc.StatusData
	trees   *ipc.TreesData
	retiled bool
	gaps    [5]int
	gapsSet bool
	err     error
}

func (f *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

func (f *fakeClient) GetTree() (*ipc.TreesData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trees, nil
}

func (f *fakeClient) Retile() error {
	if f.err != nil {
		return f.err
	}
	f.retiled = true
	return nil
}

func (f *fakeClient) SetGaps(left, right, top, bottom, internal int) error {
	if f.err != nil {
		return f.err
	}
	f.gaps = [5]int{left, right, top, bottom, internal}
	f.gapsSet = true
	return nil
}

func newTestServer(client daemonClient) *Server {
	return &Server{client: client}
}

func TestLayoutStatusReportsWorkspaces(t *testing.T) {
	fake := &fakeClient{
		status: &ipc.StatusData{
			Status: daemon.Status{
				Workspaces: []daemon.WorkspaceStatus{
					{DisplayID: 0, Display: "DP-1", Windows: 3},
				},
				TotalWindows: 3,
			},
			UptimeSeconds: 42,
			DaemonRunning: true,
		},
	}
	s := newTestServer(fake)

	_, out, err := s.handleLayoutStatus(context.Background(), nil, LayoutStatusInput{})
	if err != nil {
		t.Fatalf("handleLayoutStatus error: %v", err)
	}
	if out.TotalWindows != 3 {
		t.Fatalf("TotalWindows = %d, want 3", out.TotalWindows)
	}
	if len(out.Workspaces) != 1 || out.Workspaces[0].Display != "DP-1" {
		t.Fatalf("unexpected workspaces: %+v", out.Workspaces)
	}
	if out.UptimeSeconds != 42 || !out.DaemonRunning {
		t.Fatalf("uptime/running = %d/%v", out.UptimeSeconds, out.DaemonRunning)
	}
}

func TestLayoutTreeFiltersByDisplay(t *testing.T) {
	fake := &fakeClient{
		trees: &ipc.TreesData{
			Trees: []daemon.TreeDump{
				{DisplayID: 0, Display: "DP-1", Root: workspace.NodeInfo{Kind: "split"}},
				{DisplayID: 1, Display: "HDMI-1", Root: workspace.NodeInfo{Kind: "split"}},
			},
		},
	}
	s := newTestServer(fake)

	id := 1
	_, out, err := s.handleLayoutTree(context.Background(), nil, LayoutTreeInput{DisplayID: &id})
	if err != nil {
		t.Fatalf("handleLayoutTree error: %v", err)
	}
	if len(out.Trees) != 1 || out.Trees[0].Display != "HDMI-1" {
		t.Fatalf("unexpected trees: %+v", out.Trees)
	}

	missing := 7
	_, _, err = s.handleLayoutTree(context.Background(), nil, LayoutTreeInput{DisplayID: &missing})
	if err == nil || !strings.Contains(err.Error(), "no workspace on display 7") {
		t.Fatalf("expected missing-display error, got %v", err)
	}
}

func TestRetileInvokesDaemon(t *testing.T) {
	fake := &fakeClient{}
	s := newTestServer(fake)

	_, out, err := s.handleRetile(context.Background(), nil, RetileInput{})
	if err != nil {
		t.Fatalf("handleRetile error: %v", err)
	}
	if !out.Retiled || !fake.retiled {
		t.Fatal("retile was not forwarded to the daemon")
	}
}

func TestSetGapsValidatesAndForwards(t *testing.T) {
	fake := &fakeClient{}
	s := newTestServer(fake)

	_, _, err := s.handleSetGaps(context.Background(), nil, SetGapsInput{Left: -1})
	if err == nil {
		t.Fatal("expected error for negative gap")
	}
	if fake.gapsSet {
		t.Fatal("negative gaps must not reach the daemon")
	}

	_, out, err := s.handleSetGaps(context.Background(), nil, SetGapsInput{Left: 5, Right: 5, Top: 10, Bottom: 10, Internal: 8})
	if err != nil {
		t.Fatalf("handleSetGaps error: %v", err)
	}
	if !out.Applied {
		t.Fatal("Applied = false, want true")
	}
	if fake.gaps != [5]int{5, 5, 10, 10, 8} {
		t.Fatalf("gaps forwarded = %v", fake.gaps)
	}
}
