package engine

import (
	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/tiling"
)

// InsertWindow tiles id by splitting the region under the pointer.
func (e *Engine) InsertWindow(id platform.WindowID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.insertLocked(id, platform.Point{}, false)
}

// InsertWindowAt is InsertWindow with an explicit pointer position.
func (e *Engine) InsertWindowAt(id platform.WindowID, pt platform.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.insertLocked(id, pt, true)
}

// insertLocked splits the tracked region under the pointer between its
// owner and id. Without a target, or when the split would leave a piece
// under MinRegionSize, it falls back to a full re-partition.
func (e *Engine) insertLocked(id platform.WindowID, pt platform.Point, havePoint bool) {
	if e.reg.Has(id) {
		return
	}
	if !e.host.IsEligible(id) {
		e.logger.Debug("skipping ineligible window", "window", id)
		return
	}

	if e.reg.Len() == 0 {
		e.retileLocked(id)
		return
	}

	if !havePoint {
		pt, havePoint = e.host.PointerPosition()
	}
	if !havePoint {
		e.retileLocked(id)
		return
	}

	p := pointFromPlatform(pt)
	target, found := e.reg.WindowAt(p)
	if !found {
		e.logger.Debug("no window under pointer, retiling", "window", id, "pointer", p)
		e.retileLocked(id)
		return
	}

	existing, _ := e.reg.Rect(target)
	sector := tiling.SectorFor(existing, p)
	if !tiling.SplitFits(existing, sector, e.opts.MinRegionSize) {
		e.logger.Debug("target too small to split, retiling",
			"window", id, "target", target, "sector", sector, "region", existing)
		e.retileLocked(id)
		return
	}
	incoming, updated := tiling.Split(existing, sector)

	e.reg.Update(target, updated)
	e.reg.Add(id, incoming)

	e.logger.Debug("split window",
		"window", id,
		"target", target,
		"sector", sector,
		"incoming", incoming,
		"existing", updated)

	e.placeLocked(id, incoming, false)
	e.placeLocked(target, updated, true)
}
