package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// UnmarshalTOML accepts the same two shapes as the YAML form.
func (l *IncludeList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = []string{v}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, s)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top" toml:"top"`
	Bottom *int `yaml:"bottom" toml:"bottom"`
	Left   *int `yaml:"left" toml:"left"`
	Right  *int `yaml:"right" toml:"right"`
}

type RawTileRegion struct {
	Type          *RegionType `yaml:"type" toml:"type"`
	XPercent      *int        `yaml:"x_percent" toml:"x_percent"`
	YPercent      *int        `yaml:"y_percent" toml:"y_percent"`
	WidthPercent  *int        `yaml:"width_percent" toml:"width_percent"`
	HeightPercent *int        `yaml:"height_percent" toml:"height_percent"`
}

// RawConfig is a single config file as written. Nil fields were not set by
// that file and fall through to includes or defaults.
type RawConfig struct {
	Include           IncludeList    `yaml:"include" toml:"include"`
	EnableOnStart     *bool          `yaml:"enable_on_start" toml:"enable_on_start"`
	ToggleHotkey      *string        `yaml:"toggle_hotkey" toml:"toggle_hotkey"`
	RetileHotkey      *string        `yaml:"retile_hotkey" toml:"retile_hotkey"`
	CenterHotkey      *string        `yaml:"center_hotkey" toml:"center_hotkey"`
	Display           *string        `yaml:"display" toml:"display"`
	GapSize           *int           `yaml:"gap_size" toml:"gap_size"`
	ScreenPadding     *RawMargins    `yaml:"screen_padding" toml:"screen_padding"`
	TileRegion        *RawTileRegion `yaml:"tile_region" toml:"tile_region"`
	MinRegionSize     *int           `yaml:"min_region_size" toml:"min_region_size"`
	DriftIntervalMs   *int           `yaml:"drift_interval_ms" toml:"drift_interval_ms"`
	DriftTolerance    *int           `yaml:"drift_tolerance" toml:"drift_tolerance"`
	CreateDelayMs     *int           `yaml:"create_delay_ms" toml:"create_delay_ms"`
	GrabSettleDelayMs *int           `yaml:"grab_settle_delay_ms" toml:"grab_settle_delay_ms"`
	Animate           *bool          `yaml:"animate" toml:"animate"`
	ReclaimPolicy     *string        `yaml:"reclaim_policy" toml:"reclaim_policy"`
	LogLevel          *string        `yaml:"log_level" toml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.EnableOnStart != nil {
		out.EnableOnStart = overlay.EnableOnStart
	}
	if overlay.ToggleHotkey != nil {
		out.ToggleHotkey = overlay.ToggleHotkey
	}
	if overlay.RetileHotkey != nil {
		out.RetileHotkey = overlay.RetileHotkey
	}
	if overlay.CenterHotkey != nil {
		out.CenterHotkey = overlay.CenterHotkey
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.GapSize != nil {
		out.GapSize = overlay.GapSize
	}
	if overlay.ScreenPadding != nil {
		if out.ScreenPadding == nil {
			out.ScreenPadding = &RawMargins{}
		}
		merged := mergeRawMargins(*out.ScreenPadding, *overlay.ScreenPadding)
		out.ScreenPadding = &merged
	}
	if overlay.TileRegion != nil {
		if out.TileRegion == nil {
			out.TileRegion = &RawTileRegion{}
		}
		merged := mergeRawTileRegion(*out.TileRegion, *overlay.TileRegion)
		out.TileRegion = &merged
	}
	if overlay.MinRegionSize != nil {
		out.MinRegionSize = overlay.MinRegionSize
	}
	if overlay.DriftIntervalMs != nil {
		out.DriftIntervalMs = overlay.DriftIntervalMs
	}
	if overlay.DriftTolerance != nil {
		out.DriftTolerance = overlay.DriftTolerance
	}
	if overlay.CreateDelayMs != nil {
		out.CreateDelayMs = overlay.CreateDelayMs
	}
	if overlay.GrabSettleDelayMs != nil {
		out.GrabSettleDelayMs = overlay.GrabSettleDelayMs
	}
	if overlay.Animate != nil {
		out.Animate = overlay.Animate
	}
	if overlay.ReclaimPolicy != nil {
		out.ReclaimPolicy = overlay.ReclaimPolicy
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}

func mergeRawTileRegion(base RawTileRegion, overlay RawTileRegion) RawTileRegion {
	out := base
	if overlay.Type != nil {
		out.Type = overlay.Type
	}
	if overlay.XPercent != nil {
		out.XPercent = overlay.XPercent
	}
	if overlay.YPercent != nil {
		out.YPercent = overlay.YPercent
	}
	if overlay.WidthPercent != nil {
		out.WidthPercent = overlay.WidthPercent
	}
	if overlay.HeightPercent != nil {
		out.HeightPercent = overlay.HeightPercent
	}
	return out
}
