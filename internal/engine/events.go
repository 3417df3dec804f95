package engine

import "github.com/1broseidon/bounce/internal/platform"

// Event is one of WindowCreated, WindowDestroyed, GrabEnded or DriftTick.
type Event interface {
	isEvent()
}

// WindowCreated reports a new top-level window. Insertion is deferred so
// the host can finish mapping it.
type WindowCreated struct {
	Window platform.WindowID
}

// WindowDestroyed reports a window that is gone. Its space is reclaimed
// immediately.
type WindowDestroyed struct {
	Window platform.WindowID
}

// GrabEnded reports the end of an interactive move or resize.
type GrabEnded struct {
	Window platform.WindowID
	Op     platform.GrabOp
}

// DriftTick asks the engine to compare host geometry with its records.
type DriftTick struct{}

func (WindowCreated) isEvent()   {}
func (WindowDestroyed) isEvent() {}
func (GrabEnded) isEvent()       {}
func (DriftTick) isEvent()       {}
