package hotkeys

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/bounce/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Controller is the part of the tiling engine hotkeys drive.
type Controller interface {
	Toggle() bool
	Retile() bool
	CenterAll() int
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	ctl    Controller
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(conn *x11.Connection, ctl Controller, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		xu:     conn.XUtil,
		root:   conn.Root,
		ctl:    ctl,
		logger: logger,
	}
}

// RegisterToggle binds keySequence (e.g. "Mod4-t") to turning tiling on and off.
func (h *Handler) RegisterToggle(keySequence string) error {
	return h.RegisterFunc(keySequence, func() {
		enabled := h.ctl.Toggle()
		h.logger.Info("tiling toggled", "enabled", enabled)
	})
}

// RegisterRetile binds keySequence to a full re-partition.
func (h *Handler) RegisterRetile(keySequence string) error {
	return h.RegisterFunc(keySequence, func() {
		if !h.ctl.Retile() {
			h.logger.Debug("retile hotkey ignored", "reason", "tiling disabled")
		}
	})
}

// RegisterCenter binds keySequence to centring every window, which also
// turns tiling off.
func (h *Handler) RegisterCenter(keySequence string) error {
	return h.RegisterFunc(keySequence, func() {
		n := h.ctl.CenterAll()
		h.logger.Info("windows centered", "count", n)
	})
}

// Unregister drops every binding on the root window, e.g. before a reload
// installs new ones.
func (h *Handler) Unregister() {
	keybind.Detach(h.xu, h.root)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
