package mcp

import "github.com/1broseidon/bounce/internal/ipc"

// TilingStatusInput is the input for the tiling_status tool.
type TilingStatusInput struct{}

// TilingStatusOutput is the output for the tiling_status tool.
type TilingStatusOutput struct {
	Running       bool   `json:"running"`
	Enabled       bool   `json:"enabled"`
	Mode          string `json:"mode,omitempty"`
	WindowCount   int    `json:"window_count"`
	InstanceID    string `json:"instance_id,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds,omitempty"`
}

// SetTilingInput is the input for the set_tiling tool.
type SetTilingInput struct {
	Enabled bool `json:"enabled" jsonschema:"true to turn tiling on, false to turn it off"`
}

// SetTilingOutput is the output for the set_tiling tool.
type SetTilingOutput struct {
	Enabled bool `json:"enabled"`
}

// RetileInput is the input for the retile tool.
type RetileInput struct{}

// RetileOutput is the output for the retile tool.
type RetileOutput struct {
	Retiled bool   `json:"retiled"`
	Reason  string `json:"reason,omitempty"`
}

// ListRegionsInput is the input for the list_regions tool.
type ListRegionsInput struct{}

// ListRegionsOutput is the output for the list_regions tool.
type ListRegionsOutput struct {
	Enabled  bool         `json:"enabled"`
	WorkArea ipc.Rect     `json:"work_area"`
	Regions  []WindowRegion `json:"regions"`
}

// WindowRegion is one tracked window and the region it occupies.
type WindowRegion struct {
	Window uint32 `json:"window"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PreviewLayoutInput is the input for the preview_layout tool.
type PreviewLayoutInput struct {
	Count         int  `json:"count" jsonschema:"Number of windows to lay out (1-64)"`
	X             int  `json:"x,omitempty" jsonschema:"Work area left edge (default 0)"`
	Y             int  `json:"y,omitempty" jsonschema:"Work area top edge (default 0)"`
	Width         int  `json:"width,omitempty" jsonschema:"Work area width (default: daemon work area, else 1920)"`
	Height        int  `json:"height,omitempty" jsonschema:"Work area height (default: daemon work area, else 1080)"`
	MinRegionSize *int `json:"min_region_size,omitempty" jsonschema:"Smallest region edge before windows stack (default 100)"`
}

// PreviewLayoutOutput is the output for the preview_layout tool.
type PreviewLayoutOutput struct {
	WorkArea ipc.Rect   `json:"work_area"`
	Regions  []ipc.Rect `json:"regions"`
}
