package engine

import (
	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/tiling"
)

// Tick compares the host's view of every window with the registry and
// retiles on any mismatch. It returns true if a retile happened.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked()
}

func (e *Engine) tickLocked() bool {
	if !e.enabled || e.reg.Len() == 0 {
		return false
	}
	if e.host.GrabActive() {
		return false
	}

	listed, err := e.host.ListWindows()
	if err != nil {
		e.logger.Warn("drift check: failed to list windows", "error", err)
		return false
	}

	listedSet := make(map[platform.WindowID]bool, len(listed))
	membership := false
	for _, id := range listed {
		listedSet[id] = true
		if !e.reg.Has(id) && e.host.IsEligible(id) {
			e.logger.Debug("drift check: untracked window", "window", id)
			membership = true
		}
	}
	for _, id := range e.reg.Order() {
		if !listedSet[id] {
			e.logger.Debug("drift check: tracked window vanished", "window", id)
			membership = true
		}
	}

	report := tiling.DetectDrift(
		e.reg,
		func(id platform.WindowID) (tiling.Rect, bool) {
			if !listedSet[id] {
				return tiling.Rect{}, false
			}
			r, ok := e.host.Geometry(id)
			return rectFromPlatform(r), ok
		},
		func(r tiling.Rect) tiling.Rect { return r.Inset(e.opts.Padding) },
		e.opts.DriftTolerance,
	)

	if !membership && !report.HasDrift() {
		return false
	}

	e.logger.Info("drift detected, retiling",
		"drifted", len(report.Drifted),
		"membership_changed", membership)
	e.retileLocked()
	return true
}
