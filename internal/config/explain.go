package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given key path and its source.
//
// Supported paths include:
//
//	enable_on_start
//	toggle_hotkey
//	retile_hotkey
//	center_hotkey
//	display
//	gap_size
//	screen_padding.top
//	tile_region.type
//	tile_region.width_percent
//	min_region_size
//	drift_interval_ms
//	reclaim_policy
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "screen_padding":
		if len(parts) == 1 {
			return cfg.ScreenPadding, nil
		}
		switch parts[1] {
		case "top":
			return cfg.ScreenPadding.Top, nil
		case "bottom":
			return cfg.ScreenPadding.Bottom, nil
		case "left":
			return cfg.ScreenPadding.Left, nil
		case "right":
			return cfg.ScreenPadding.Right, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	case "tile_region":
		if len(parts) == 1 {
			return cfg.TileRegion, nil
		}
		switch parts[1] {
		case "type":
			return cfg.TileRegion.Type, nil
		case "x_percent":
			return cfg.TileRegion.XPercent, nil
		case "y_percent":
			return cfg.TileRegion.YPercent, nil
		case "width_percent":
			return cfg.TileRegion.WidthPercent, nil
		case "height_percent":
			return cfg.TileRegion.HeightPercent, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch path {
	case "enable_on_start":
		return cfg.EnableOnStart, nil
	case "toggle_hotkey":
		return cfg.ToggleHotkey, nil
	case "retile_hotkey":
		return cfg.RetileHotkey, nil
	case "center_hotkey":
		return cfg.CenterHotkey, nil
	case "display":
		return cfg.Display, nil
	case "gap_size":
		return cfg.GapSize, nil
	case "min_region_size":
		return cfg.MinRegionSize, nil
	case "drift_interval_ms":
		return cfg.DriftIntervalMs, nil
	case "drift_tolerance":
		return cfg.DriftTolerance, nil
	case "create_delay_ms":
		return cfg.CreateDelayMs, nil
	case "grab_settle_delay_ms":
		return cfg.GrabSettleDelayMs, nil
	case "animate":
		return cfg.Animate, nil
	case "reclaim_policy":
		return cfg.ReclaimPolicy, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
