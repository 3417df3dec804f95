package engine

import (
	"github.com/1broseidon/bounce/internal/platform"
)

// ReorderWindow moves id into the slot of the window under pt and retiles.
// Returns false when there is no such window; the layout is still rebuilt
// so id snaps back to its region.
func (e *Engine) ReorderWindow(id platform.WindowID, pt platform.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return false
	}
	return e.reorderLocked(id, pt)
}

func (e *Engine) reorderLocked(id platform.WindowID, pt platform.Point) bool {
	if !e.reg.Has(id) {
		e.retileLocked(id)
		return false
	}

	target, found := e.reg.WindowAt(pointFromPlatform(pt), id)
	if !found {
		e.retileLocked()
		return false
	}

	e.reg.MoveTo(id, target)
	e.logger.Debug("reordered window", "window", id, "target", target, "order", e.reg.Order())
	e.retileLocked()
	return true
}

// grabEndedLocked settles the layout after an interactive grab. Grabs on
// windows that are not tiled, such as dialogs, leave the layout alone.
func (e *Engine) grabEndedLocked(id platform.WindowID, op platform.GrabOp) {
	if !e.host.IsEligible(id) {
		e.logger.Debug("ignoring grab on ineligible window", "window", id, "op", op)
		return
	}
	switch op {
	case platform.GrabMove:
		pt, ok := e.host.PointerPosition()
		if !ok {
			e.retileLocked()
			return
		}
		e.reorderLocked(id, pt)
	case platform.GrabResize:
		e.retileLocked()
	}
}
