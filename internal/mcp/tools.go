package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/bounce/internal/ipc"
	"github.com/1broseidon/bounce/internal/tiling"
)

const (
	maxPreviewCount = 64

	fallbackWidth  = 1920
	fallbackHeight = 1080
)

func (s *Server) handleTilingStatus(ctx context.Context, req *mcpsdk.CallToolRequest, input TilingStatusInput) (*mcpsdk.CallToolResult, TilingStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		// An absent daemon is a status, not a tool failure.
		return nil, TilingStatusOutput{Running: false}, nil
	}
	return nil, TilingStatusOutput{
		Running:       true,
		Enabled:       status.Enabled,
		Mode:          status.Mode,
		WindowCount:   status.WindowCount,
		InstanceID:    status.InstanceID,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleSetTiling(ctx context.Context, req *mcpsdk.CallToolRequest, input SetTilingInput) (*mcpsdk.CallToolResult, SetTilingOutput, error) {
	enabled, err := s.daemon.SetEnabled(input.Enabled)
	if err != nil {
		return nil, SetTilingOutput{}, fmt.Errorf("set tiling: %w", err)
	}
	return nil, SetTilingOutput{Enabled: enabled}, nil
}

func (s *Server) handleRetile(ctx context.Context, req *mcpsdk.CallToolRequest, input RetileInput) (*mcpsdk.CallToolResult, RetileOutput, error) {
	retiled, err := s.daemon.Retile()
	if err != nil {
		return nil, RetileOutput{}, fmt.Errorf("retile: %w", err)
	}
	out := RetileOutput{Retiled: retiled}
	if !retiled {
		out.Reason = "tiling is disabled"
	}
	return nil, out, nil
}

func (s *Server) handleListRegions(ctx context.Context, req *mcpsdk.CallToolRequest, input ListRegionsInput) (*mcpsdk.CallToolResult, ListRegionsOutput, error) {
	data, err := s.daemon.GetRegions()
	if err != nil {
		return nil, ListRegionsOutput{}, fmt.Errorf("list regions: %w", err)
	}
	out := ListRegionsOutput{
		Enabled:  data.Enabled,
		WorkArea: data.WorkArea,
		Regions:  make([]WindowRegion, 0, len(data.Regions)),
	}
	for _, r := range data.Regions {
		out.Regions = append(out.Regions, WindowRegion{
			Window: r.Window,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handlePreviewLayout(ctx context.Context, req *mcpsdk.CallToolRequest, input PreviewLayoutInput) (*mcpsdk.CallToolResult, PreviewLayoutOutput, error) {
	if input.Count < 1 || input.Count > maxPreviewCount {
		return nil, PreviewLayoutOutput{}, fmt.Errorf("count must be between 1 and %d, got %d", maxPreviewCount, input.Count)
	}
	if input.Width < 0 || input.Height < 0 {
		return nil, PreviewLayoutOutput{}, fmt.Errorf("width and height must not be negative")
	}
	minSize := tiling.DefaultMinRegionSize
	if input.MinRegionSize != nil {
		if *input.MinRegionSize < 0 {
			return nil, PreviewLayoutOutput{}, fmt.Errorf("min_region_size must not be negative")
		}
		minSize = *input.MinRegionSize
	}

	area := s.previewArea(input)
	positions := tiling.FibonacciPositions(input.Count, area, minSize)

	out := PreviewLayoutOutput{
		WorkArea: rectToIPC(area),
		Regions:  make([]ipc.Rect, 0, len(positions)),
	}
	for _, r := range positions {
		out.Regions = append(out.Regions, rectToIPC(r))
	}
	return nil, out, nil
}

// previewArea fills in missing dimensions from the daemon's work area.
func (s *Server) previewArea(input PreviewLayoutInput) tiling.Rect {
	area := tiling.Rect{X: input.X, Y: input.Y, Width: input.Width, Height: input.Height}
	if area.Width > 0 && area.Height > 0 {
		return area
	}

	var live ipc.Rect
	if s.daemon != nil {
		if data, err := s.daemon.GetRegions(); err == nil && data.WorkArea.Width > 0 && data.WorkArea.Height > 0 {
			live = data.WorkArea
		}
	}
	if live.Width == 0 {
		live = ipc.Rect{Width: fallbackWidth, Height: fallbackHeight}
	}

	if area.Width == 0 && area.Height == 0 && input.X == 0 && input.Y == 0 {
		return tiling.Rect{X: live.X, Y: live.Y, Width: live.Width, Height: live.Height}
	}
	if area.Width == 0 {
		area.Width = live.Width
	}
	if area.Height == 0 {
		area.Height = live.Height
	}
	return area
}

func rectToIPC(r tiling.Rect) ipc.Rect {
	return ipc.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
