package engine

import (
	"github.com/1broseidon/bounce/internal/tiling"
)

// CenterAll turns tiling off and stacks every eligible window in the middle
// of the work area at half its width and height. It returns the number of
// windows placed.
func (e *Engine) CenterAll() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A live layout would pull the windows straight back.
	e.disableLocked()

	wa, err := e.host.WorkArea()
	if err != nil {
		e.logger.Warn("failed to read work area", "error", err)
		return 0
	}
	area := rectFromPlatform(wa)
	if padded, ok := tiling.ApplyPadding(area, e.opts.ScreenPadding); ok {
		area = padded
	}

	listed, err := e.host.ListWindows()
	if err != nil {
		e.logger.Warn("failed to list windows", "error", err)
		return 0
	}

	target := rectToPlatform(tiling.Centered(area))
	centered := 0
	for _, id := range listed {
		if !e.host.IsEligible(id) {
			continue
		}
		e.host.PlaceWindow(id, target, e.opts.Animate)
		centered++
	}

	e.logger.Info("centered windows", "count", centered, "region", target)
	return centered
}
