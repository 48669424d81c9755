package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panetile/panetile/internal/ipc"
)

const (
	ServerName    = "panetile"
	ServerVersion = "0.1.0"
)

// daemonClient is the slice of the IPC client the MCP tools need.
// Narrowed to an interface so tests can run without a live daemon.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	GetTree() (*ipc.TreesData, error)
	Retile() error
	SetGaps(left, right, top, bottom, internal int) error
}

// Server exposes the panetile daemon over MCP. Every tool is a thin
// wrapper around the daemon's unix-socket IPC, so the daemon must be
// running for any tool call to succeed.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates a new MCP server backed by the daemon IPC socket.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "layout_status",
		Description: "Get the tiling daemon status: one entry per workspace with its display name, window count, and usable area, plus daemon uptime.",
	}, s.handleLayoutStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "layout_tree",
		Description: "Dump the layout tree of every workspace (or a single display when display_id is given): nested splits with direction and per-window geometry in both screen and workspace-local coordinates.",
	}, s.handleLayoutTree)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "retile",
		Description: "Re-apply the current layout on every workspace. Useful after windows were moved or resized manually.",
	}, s.handleRetile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_gaps",
		Description: "Update the gap configuration (outer edges and internal spacing, in pixels) and retile all workspaces. Gaps must be non-negative.",
	}, s.handleSetGaps)
}
