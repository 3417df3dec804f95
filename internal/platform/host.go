package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// GrabOp classifies an interactive pointer grab that just ended.
type GrabOp int

const (
	GrabOther GrabOp = iota
	GrabMove
	GrabResize
)

func (g GrabOp) String() string {
	switch g {
	case GrabMove:
		return "move"
	case GrabResize:
		return "resize"
	default:
		return "other"
	}
}

// HostEvents are the callbacks a WindowHost invokes. Nil fields are not
// called.
type HostEvents struct {
	WindowCreated   func(WindowID)
	WindowDestroyed func(WindowID)
	GrabEnd         func(WindowID, GrabOp)
}

// WindowHost abstracts the window system the tiling engine drives.
//
// ListWindows returns the windows on the active workspace in host order.
// Geometry reports false when the window's geometry cannot be read.
// PlaceWindow is fire-and-forget; animate is a hint and may be ignored.
// Subscribe returns a function that removes the subscription.
type WindowHost interface {
	ListWindows() ([]WindowID, error)
	IsEligible(id WindowID) bool
	Geometry(id WindowID) (Rect, bool)
	PlaceWindow(id WindowID, r Rect, animate bool)
	PointerPosition() (Point, bool)
	WorkArea() (Rect, error)
	GrabActive() bool
	Subscribe(events HostEvents) (unsubscribe func())
}
