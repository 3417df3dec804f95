package x11

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	StateSkipTaskbar   = "_NET_WM_STATE_SKIP_TASKBAR"
	StateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
	StateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	StateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	StateHidden        = "_NET_WM_STATE_HIDDEN"

	actionMove = "_NET_WM_ACTION_MOVE"
)

// Geometry is a frame rectangle in root coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// MoveResizeWindow places the window frame at the given root geometry. It
// asks the WM through _NET_MOVERESIZE_WINDOW first and falls back to a plain
// ConfigureWindow; the error is non-nil only when both fail.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore configure requests on most WMs. A window
	// without _NET_WM_STATE has nothing to undo.
	_ = c.unmaximizeWindow(windowID)

	// _NET_MOVERESIZE_WINDOW positions the frame but sizes the client, so
	// take the decorations off the requested size.
	left, right, top, bottom := c.GetFrameExtents(windowID)
	width = max(1, width-left-right)
	height = max(1, height-top-bottom)

	err := firstSuccess(
		func() error {
			return ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height)
		},
		func() error {
			mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
				xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
			values := []uint32{uint32(x), uint32(y), uint32(width), uint32(height)}
			return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
		},
	)
	if err != nil {
		return fmt.Errorf("failed to move window %d: %w", windowID, err)
	}
	return nil
}

// firstSuccess runs attempts in order until one succeeds. If none does, the
// errors of every attempt are joined.
func firstSuccess(attempts ...func() error) error {
	var errs []error
	for _, attempt := range attempts {
		err := attempt()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}
	if slices.Contains(states, StateMaximizedHorz) {
		ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, StateMaximizedHorz)
	}
	if slices.Contains(states, StateMaximizedVert) {
		ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, StateMaximizedVert)
	}
	return nil
}

// GetFrameExtents returns the window decoration sizes, or zeros when the WM
// does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// FrameGeometry returns the decorated window geometry in root coordinates.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	rect, err := xwindow.New(c.XUtil, windowID).DecorGeometry()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get geometry of window %d: %w", windowID, err)
	}
	return Geometry{X: rect.X(), Y: rect.Y(), Width: rect.Width(), Height: rect.Height()}, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// WindowStates returns _NET_WM_STATE, or nil when unset.
func (c *Connection) WindowStates(windowID xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return states
}

// IsResizable reports false only when WM_NORMAL_HINTS pins the size.
func (c *Connection) IsResizable(windowID xproto.Window) bool {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		return true
	}
	if hints.Flags&icccm.SizeHintPMinSize == 0 || hints.Flags&icccm.SizeHintPMaxSize == 0 {
		return true
	}
	return hints.MinWidth != hints.MaxWidth || hints.MinHeight != hints.MaxHeight
}

// IsMovable checks _NET_WM_ALLOWED_ACTIONS. Windows without the property are
// assumed movable.
func (c *Connection) IsMovable(windowID xproto.Window) bool {
	actions, err := ewmh.WmAllowedActionsGet(c.XUtil, windowID)
	if err != nil || len(actions) == 0 {
		return true
	}
	return slices.Contains(actions, actionMove)
}

// QueryPointer returns the pointer position in root coordinates and the
// current key/button mask.
func (c *Connection) QueryPointer() (x, y int, mask uint16, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), reply.Mask, nil
}

// ButtonHeld reports whether mask has any pointer button down.
func ButtonHeld(mask uint16) bool {
	const buttons = xproto.KeyButMaskButton1 | xproto.KeyButMaskButton2 | xproto.KeyButMaskButton3
	return mask&buttons != 0
}
