package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panetile/panetile/internal/daemon"
)

func (s *Server) handleLayoutStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ LayoutStatusInput) (*mcpsdk.CallToolResult, LayoutStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, LayoutStatusOutput{}, fmt.Errorf("failed to query daemon status: %w", err)
	}

	return nil, LayoutStatusOutput{
		Workspaces:    status.Workspaces,
		TotalWindows:  status.TotalWindows,
		UptimeSeconds: status.UptimeSeconds,
		DaemonRunning: status.DaemonRunning,
	}, nil
}

func (s *Server) handleLayoutTree(_ context.Context, _ *mcpsdk.CallToolRequest, args LayoutTreeInput) (*mcpsdk.CallToolResult, LayoutTreeOutput, error) {
	data, err := s.client.GetTree()
	if err != nil {
		return nil, LayoutTreeOutput{}, fmt.Errorf("failed to query layout tree: %w", err)
	}

	trees := data.Trees
	if args.DisplayID != nil {
		var filtered []daemon.TreeDump
		for _, t := range trees {
			if t.DisplayID == *args.DisplayID {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) == 0 {
			return nil, LayoutTreeOutput{}, fmt.Errorf("no workspace on display %d", *args.DisplayID)
		}
		trees = filtered
	}

	return nil, LayoutTreeOutput{Trees: trees}, nil
}

func (s *Server) handleRetile(_ context.Context, _ *mcpsdk.CallToolRequest, _ RetileInput) (*mcpsdk.CallToolResult, RetileOutput, error) {
	if err := s.client.Retile(); err != nil {
		return nil, RetileOutput{}, fmt.Errorf("failed to retile: %w", err)
	}
	return nil, RetileOutput{Retiled: true}, nil
}

func (s *Server) handleSetGaps(_ context.Context, _ *mcpsdk.CallToolRequest, args SetGapsInput) (*mcpsdk.CallToolResult, SetGapsOutput, error) {
	if args.Left < 0 || args.Right < 0 || args.Top < 0 || args.Bottom < 0 || args.Internal < 0 {
		return nil, SetGapsOutput{}, fmt.Errorf("gaps must be non-negative")
	}
	if err := s.client.SetGaps(args.Left, args.Right, args.Top, args.Bottom, args.Internal); err != nil {
		return nil, SetGapsOutput{}, fmt.Errorf("failed to set gaps: %w", err)
	}
	return nil, SetGapsOutput{Applied: true}, nil
}
