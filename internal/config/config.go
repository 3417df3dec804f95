package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Margins represents per-side padding in pixels.
type Margins struct {
	Top    int `yaml:"top" json:"top"`
	Bottom int `yaml:"bottom" json:"bottom"`
	Left   int `yaml:"left" json:"left"`
	Right  int `yaml:"right" json:"right"`
}

// RegionType defines tile region presets.
type RegionType string

const (
	RegionFull       RegionType = "full"
	RegionLeftHalf   RegionType = "left-half"
	RegionRightHalf  RegionType = "right-half"
	RegionTopHalf    RegionType = "top-half"
	RegionBottomHalf RegionType = "bottom-half"
	RegionCustom     RegionType = "custom"
)

// TileRegion defines which part of the work area is tiled.
type TileRegion struct {
	Type          RegionType `yaml:"type" json:"type"`
	XPercent      int        `yaml:"x_percent" json:"x_percent"`           // 0-100
	YPercent      int        `yaml:"y_percent" json:"y_percent"`           // 0-100
	WidthPercent  int        `yaml:"width_percent" json:"width_percent"`   // 0-100
	HeightPercent int        `yaml:"height_percent" json:"height_percent"` // 0-100
}

const (
	DefaultGapSize           = 8
	DefaultMinRegionSize     = 100
	DefaultDriftIntervalMs   = 3000
	DefaultDriftTolerance    = 2
	DefaultCreateDelayMs     = 100
	DefaultGrabSettleDelayMs = 10
	DefaultToggleHotkey      = "Mod4-t"
	DefaultCenterHotkey      = "Mod4-b"
)

// Config holds the application configuration.
type Config struct {
	EnableOnStart     bool       `yaml:"enable_on_start" json:"enable_on_start"`
	ToggleHotkey      string     `yaml:"toggle_hotkey" json:"toggle_hotkey"`
	RetileHotkey      string     `yaml:"retile_hotkey,omitempty" json:"retile_hotkey,omitempty"`
	CenterHotkey      string     `yaml:"center_hotkey" json:"center_hotkey"`
	Display           string     `yaml:"display,omitempty" json:"display,omitempty"`
	GapSize           int        `yaml:"gap_size" json:"gap_size"`
	ScreenPadding     Margins    `yaml:"screen_padding" json:"screen_padding"`
	TileRegion        TileRegion `yaml:"tile_region" json:"tile_region"`
	MinRegionSize     int        `yaml:"min_region_size" json:"min_region_size"`
	DriftIntervalMs   int        `yaml:"drift_interval_ms" json:"drift_interval_ms"`
	DriftTolerance    int        `yaml:"drift_tolerance" json:"drift_tolerance"`
	CreateDelayMs     int        `yaml:"create_delay_ms" json:"create_delay_ms"`
	GrabSettleDelayMs int        `yaml:"grab_settle_delay_ms" json:"grab_settle_delay_ms"`
	Animate           bool       `yaml:"animate" json:"animate"`
	ReclaimPolicy     string     `yaml:"reclaim_policy" json:"reclaim_policy"`
	LogLevel          string     `yaml:"log_level" json:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		EnableOnStart:     true,
		ToggleHotkey:      DefaultToggleHotkey,
		CenterHotkey:      DefaultCenterHotkey,
		GapSize:           DefaultGapSize,
		TileRegion:        TileRegion{Type: RegionFull},
		MinRegionSize:     DefaultMinRegionSize,
		DriftIntervalMs:   DefaultDriftIntervalMs,
		DriftTolerance:    DefaultDriftTolerance,
		CreateDelayMs:     DefaultCreateDelayMs,
		GrabSettleDelayMs: DefaultGrabSettleDelayMs,
		Animate:           true,
		ReclaimPolicy:     "exact",
		LogLevel:          "info",
	}
}

// SaveTo writes the configuration as YAML to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ToggleHotkey) == "" {
		return &ValidationError{Path: "toggle_hotkey", Err: fmt.Errorf("toggle_hotkey is required")}
	}
	if c.RetileHotkey != "" && c.RetileHotkey == c.ToggleHotkey {
		return &ValidationError{Path: "retile_hotkey", Err: fmt.Errorf("retile_hotkey must differ from toggle_hotkey")}
	}
	if c.CenterHotkey != "" && (c.CenterHotkey == c.ToggleHotkey || c.CenterHotkey == c.RetileHotkey) {
		return &ValidationError{Path: "center_hotkey", Err: fmt.Errorf("center_hotkey must differ from the other hotkeys")}
	}
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if err := validateTileRegion(c.TileRegion); err != nil {
		return &ValidationError{Path: "tile_region", Err: err}
	}
	if c.MinRegionSize < 0 {
		return &ValidationError{Path: "min_region_size", Err: fmt.Errorf("min_region_size must be >= 0")}
	}
	if c.MinRegionSize > 0 && c.GapSize*2 >= c.MinRegionSize {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be less than half of min_region_size (%d)", c.MinRegionSize)}
	}
	if c.DriftIntervalMs < 100 {
		return &ValidationError{Path: "drift_interval_ms", Err: fmt.Errorf("drift_interval_ms must be >= 100")}
	}
	if c.DriftTolerance < 0 {
		return &ValidationError{Path: "drift_tolerance", Err: fmt.Errorf("drift_tolerance must be >= 0")}
	}
	if c.CreateDelayMs < 0 {
		return &ValidationError{Path: "create_delay_ms", Err: fmt.Errorf("create_delay_ms must be >= 0")}
	}
	if c.GrabSettleDelayMs < 0 {
		return &ValidationError{Path: "grab_settle_delay_ms", Err: fmt.Errorf("grab_settle_delay_ms must be >= 0")}
	}
	switch c.ReclaimPolicy {
	case "exact", "single":
	default:
		return &ValidationError{Path: "reclaim_policy", Err: fmt.Errorf("reclaim_policy must be one of: exact, single")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, warning, error")}
	}
	return nil
}

func validateTileRegion(region TileRegion) error {
	switch region.Type {
	case RegionFull, RegionLeftHalf, RegionRightHalf, RegionTopHalf, RegionBottomHalf:
		return nil
	case RegionCustom:
	default:
		return fmt.Errorf("invalid type %q", region.Type)
	}

	if region.XPercent < 0 || region.XPercent > 100 ||
		region.YPercent < 0 || region.YPercent > 100 {
		return fmt.Errorf("custom region x_percent and y_percent must be within 0-100")
	}
	if region.WidthPercent <= 0 || region.WidthPercent > 100 ||
		region.HeightPercent <= 0 || region.HeightPercent > 100 {
		return fmt.Errorf("custom region width_percent and height_percent must be within 1-100")
	}
	if region.XPercent+region.WidthPercent > 100 || region.YPercent+region.HeightPercent > 100 {
		return fmt.Errorf("custom region exceeds the work area")
	}
	return nil
}
