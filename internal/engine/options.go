package engine

import (
	"log/slog"
	"time"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/tiling"
)

// Options configures an Engine.
type Options struct {
	// Padding is the inset applied to every region before placement.
	Padding         int
	ScreenPadding   config.Margins
	TileRegion      config.TileRegion
	MinRegionSize   int
	DriftTolerance  int
	TickInterval    time.Duration
	CreateDelay     time.Duration
	GrabSettleDelay time.Duration
	Animate         bool
	ReclaimPolicy   tiling.MatchPolicy

	Scheduler Scheduler
	Logger    *slog.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Padding:         config.DefaultGapSize,
		TileRegion:      config.TileRegion{Type: config.RegionFull},
		MinRegionSize:   tiling.DefaultMinRegionSize,
		DriftTolerance:  tiling.DefaultDriftTolerance,
		TickInterval:    3 * time.Second,
		CreateDelay:     100 * time.Millisecond,
		GrabSettleDelay: 10 * time.Millisecond,
		Animate:         true,
		ReclaimPolicy:   tiling.MatchExactUnion,
	}
}

// OptionsFromConfig maps a validated config onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	opts.Padding = cfg.GapSize
	opts.ScreenPadding = cfg.ScreenPadding
	opts.TileRegion = cfg.TileRegion
	opts.MinRegionSize = cfg.MinRegionSize
	opts.DriftTolerance = cfg.DriftTolerance
	opts.TickInterval = time.Duration(cfg.DriftIntervalMs) * time.Millisecond
	opts.CreateDelay = time.Duration(cfg.CreateDelayMs) * time.Millisecond
	opts.GrabSettleDelay = time.Duration(cfg.GrabSettleDelayMs) * time.Millisecond
	opts.Animate = cfg.Animate
	if policy, err := tiling.ParseMatchPolicy(cfg.ReclaimPolicy); err == nil {
		opts.ReclaimPolicy = policy
	}
	return opts
}
