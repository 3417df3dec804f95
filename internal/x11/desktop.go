package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// AllDesktops is what GetWindowDesktop reports for sticky windows.
const AllDesktops = -1

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetWindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns AllDesktops for sticky windows.
func (c *Connection) GetWindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return AllDesktops, nil
	}
	return int(desktop), nil
}

// ClientList returns _NET_CLIENT_LIST in mapping order.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// ClientsOnCurrentDesktop filters ClientList to windows visible on the
// current desktop. Windows whose desktop cannot be read are kept.
func (c *Connection) ClientsOnCurrentDesktop() ([]xproto.Window, error) {
	clients, err := c.ClientList()
	if err != nil {
		return nil, err
	}
	current, err := c.GetCurrentDesktop()
	if err != nil {
		return clients, nil
	}

	out := make([]xproto.Window, 0, len(clients))
	for _, win := range clients {
		desktop, err := c.GetWindowDesktop(win)
		if err != nil || desktop == AllDesktops || desktop == current {
			out = append(out, win)
		}
	}
	return out, nil
}
