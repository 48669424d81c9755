package mcp

import "github.com/panetile/panetile/internal/daemon"

// LayoutStatusInput is the input for the layout_status tool.
type LayoutStatusInput struct{}

// LayoutStatusOutput is the output for the layout_status tool.
type LayoutStatusOutput struct {
	Workspaces    []daemon.WorkspaceStatus `json:"workspaces"`
	TotalWindows  int                      `json:"total_windows"`
	UptimeSeconds int64                    `json:"uptime_seconds"`
	DaemonRunning bool                     `json:"daemon_running"`
}

// LayoutTreeInput is the input for the layout_tree tool.
type LayoutTreeInput struct {
	DisplayID *int `json:"display_id,omitempty" jsonschema:"Optional display ID to restrict the dump to a single workspace"`
}

// LayoutTreeOutput is the output for the layout_tree tool.
type LayoutTreeOutput struct {
	Trees []daemon.TreeDump `json:"trees"`
}

// RetileInput is the input for the retile tool.
type RetileInput struct{}

// RetileOutput is the output for the retile tool.
type RetileOutput struct {
	Retiled bool `json:"retiled"`
}

// SetGapsInput is the input for the set_gaps tool.
type SetGapsInput struct {
	Left     int `json:"left" jsonschema:"Gap in pixels at the left workspace edge"`
	Right    int `json:"right" jsonschema:"Gap in pixels at the right workspace edge"`
	Top      int `json:"top" jsonschema:"Gap in pixels at the top workspace edge"`
	Bottom   int `json:"bottom" jsonschema:"Gap in pixels at the bottom workspace edge"`
	Internal int `json:"internal" jsonschema:"Gap in pixels between adjacent windows"`
}

// SetGapsOutput is the output for the set_gaps tool.
type SetGapsOutput struct {
	Applied bool `json:"applied"`
}
