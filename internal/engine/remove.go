package engine

import (
	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/tiling"
)

// RemoveWindow forgets id and lets its neighbours reclaim the space. It
// returns the reclamation outcome; untracked windows report BorderNone.
func (e *Engine) RemoveWindow(id platform.WindowID) tiling.ReclaimResult[platform.WindowID] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return tiling.ReclaimResult[platform.WindowID]{}
	}
	return e.removeLocked(id)
}

func (e *Engine) removeLocked(id platform.WindowID) tiling.ReclaimResult[platform.WindowID] {
	removed, ok := e.reg.Remove(id)
	if !ok {
		return tiling.ReclaimResult[platform.WindowID]{}
	}

	res := tiling.Reclaim(e.reg, removed, e.opts.ReclaimPolicy)
	if res.Vacant() {
		e.logger.Debug("no neighbours cover removed region, leaving it vacant",
			"window", id,
			"region", removed)
		return res
	}

	e.logger.Debug("reclaimed region",
		"window", id,
		"border", res.Border,
		"grown", len(res.Grown))
	for _, rec := range res.Grown {
		e.placeLocked(rec.Handle, rec.Rect, true)
	}
	return res
}
