package config

import (
	"fmt"
	"strings"
)

// ValidationError ties a config failure to the key that caused it and, when
// known, the file position that set that key.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		if e.Source.Line > 0 {
			return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %s: %v", e.Source.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults. Range checks are left to
// Validate so that callers can attach file positions first.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.EnableOnStart != nil {
		cfg.EnableOnStart = *raw.EnableOnStart
	}
	if raw.ToggleHotkey != nil {
		cfg.ToggleHotkey = strings.TrimSpace(*raw.ToggleHotkey)
	}
	if raw.RetileHotkey != nil {
		cfg.RetileHotkey = strings.TrimSpace(*raw.RetileHotkey)
	}
	if raw.CenterHotkey != nil {
		cfg.CenterHotkey = strings.TrimSpace(*raw.CenterHotkey)
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.GapSize != nil {
		cfg.GapSize = *raw.GapSize
	}
	if raw.ScreenPadding != nil {
		cfg.ScreenPadding = applyMargins(cfg.ScreenPadding, *raw.ScreenPadding)
	}
	if raw.TileRegion != nil {
		region, err := applyTileRegion(cfg.TileRegion, *raw.TileRegion)
		if err != nil {
			return nil, &ValidationError{Path: "tile_region.type", Err: err}
		}
		cfg.TileRegion = region
	}
	if raw.MinRegionSize != nil {
		cfg.MinRegionSize = *raw.MinRegionSize
	}
	if raw.DriftIntervalMs != nil {
		cfg.DriftIntervalMs = *raw.DriftIntervalMs
	}
	if raw.DriftTolerance != nil {
		cfg.DriftTolerance = *raw.DriftTolerance
	}
	if raw.CreateDelayMs != nil {
		cfg.CreateDelayMs = *raw.CreateDelayMs
	}
	if raw.GrabSettleDelayMs != nil {
		cfg.GrabSettleDelayMs = *raw.GrabSettleDelayMs
	}
	if raw.Animate != nil {
		cfg.Animate = *raw.Animate
	}
	if raw.ReclaimPolicy != nil {
		cfg.ReclaimPolicy = strings.ToLower(strings.TrimSpace(*raw.ReclaimPolicy))
	}
	if raw.LogLevel != nil {
		level := strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		if level == "warn" {
			level = "warning"
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func applyMargins(base Margins, raw RawMargins) Margins {
	out := base
	if raw.Top != nil {
		out.Top = *raw.Top
	}
	if raw.Bottom != nil {
		out.Bottom = *raw.Bottom
	}
	if raw.Left != nil {
		out.Left = *raw.Left
	}
	if raw.Right != nil {
		out.Right = *raw.Right
	}
	return out
}

func applyTileRegion(base TileRegion, raw RawTileRegion) (TileRegion, error) {
	out := base
	if raw.Type != nil {
		t := RegionType(strings.ToLower(strings.TrimSpace(string(*raw.Type))))
		if t == "" {
			return TileRegion{}, fmt.Errorf("type must not be empty")
		}
		out.Type = t
	}
	if raw.XPercent != nil {
		out.XPercent = *raw.XPercent
	}
	if raw.YPercent != nil {
		out.YPercent = *raw.YPercent
	}
	if raw.WidthPercent != nil {
		out.WidthPercent = *raw.WidthPercent
	}
	if raw.HeightPercent != nil {
		out.HeightPercent = *raw.HeightPercent
	}
	return out, nil
}
