package daemon

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/engine"
	"github.com/1broseidon/bounce/internal/logging"
)

// Tiler is the engine surface a reload touches.
type Tiler interface {
	Reconfigure(opts engine.Options)
}

// KeyBinder installs the global hotkeys.
type KeyBinder interface {
	Unregister()
	RegisterToggle(keySequence string) error
	RegisterRetile(keySequence string) error
	RegisterCenter(keySequence string) error
}

// LevelSetter changes the log level of a running logger.
type LevelSetter interface {
	SetLevel(level log.Level)
}

// Reloader applies configuration changes to a running daemon. Reloads from
// the file watcher, SIGHUP and the RELOAD command are serialised.
type Reloader struct {
	mu      sync.Mutex
	path    string
	current *config.Config
	load    func(path string) (*config.LoadResult, error)

	tiler  Tiler
	keys   KeyBinder
	level  LevelSetter
	logger *slog.Logger
	// forceDebug pins the level to debug regardless of log_level.
	forceDebug bool
}

// ReloaderConfig holds the dependencies of a Reloader.
type ReloaderConfig struct {
	Path       string
	Current    *config.Config
	Tiler      Tiler
	Keys       KeyBinder
	Level      LevelSetter
	Logger     *slog.Logger
	ForceDebug bool
}

// NewReloader creates a reloader starting from cfg.Current.
func NewReloader(cfg ReloaderConfig) *Reloader {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reloader{
		path:       cfg.Path,
		current:    cfg.Current,
		load:       config.LoadFromPath,
		tiler:      cfg.Tiler,
		keys:       cfg.Keys,
		level:      cfg.Level,
		logger:     logger,
		forceDebug: cfg.ForceDebug,
	}
}

// Current returns the config in effect.
func (r *Reloader) Current() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Reload re-reads the config file and applies it. On error the previous
// config stays in effect.
func (r *Reloader) Reload() error {
	res, err := r.load(r.path)
	if err != nil {
		r.logger.Warn("config reload failed", "error", err)
		return err
	}
	return r.Apply(res.Config)
}

// Apply switches the daemon to cfg.
func (r *Reloader) Apply(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.current

	if r.level != nil && !r.forceDebug {
		if lvl, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			r.level.SetLevel(lvl)
		}
	}
	if prev != nil && prev.Display != cfg.Display {
		r.logger.Warn("display change needs a daemon restart", "display", prev.Display, "requested", cfg.Display)
	}

	var bindErr error
	if prev == nil || hotkeysChanged(prev, cfg) {
		if r.keys != nil {
			r.keys.Unregister()
			bindErr = BindHotkeys(r.keys, cfg)
		}
	}

	if r.tiler != nil {
		opts := engine.OptionsFromConfig(cfg)
		opts.Logger = r.logger
		r.tiler.Reconfigure(opts)
	}

	r.current = cfg
	r.logger.Info("config applied", "gap", cfg.GapSize, "region", cfg.TileRegion.Type, "reclaim", cfg.ReclaimPolicy)
	return bindErr
}

func hotkeysChanged(prev, next *config.Config) bool {
	return prev.ToggleHotkey != next.ToggleHotkey ||
		prev.RetileHotkey != next.RetileHotkey ||
		prev.CenterHotkey != next.CenterHotkey
}

// BindHotkeys registers the toggle hotkey and, when configured, the retile
// and center hotkeys. All are attempted; the first failure is returned.
func BindHotkeys(keys KeyBinder, cfg *config.Config) error {
	var first error
	if err := keys.RegisterToggle(cfg.ToggleHotkey); err != nil {
		first = fmt.Errorf("toggle hotkey %q: %w", cfg.ToggleHotkey, err)
	}
	if cfg.RetileHotkey != "" {
		if err := keys.RegisterRetile(cfg.RetileHotkey); err != nil && first == nil {
			first = fmt.Errorf("retile hotkey %q: %w", cfg.RetileHotkey, err)
		}
	}
	if cfg.CenterHotkey != "" {
		if err := keys.RegisterCenter(cfg.CenterHotkey); err != nil && first == nil {
			first = fmt.Errorf("center hotkey %q: %w", cfg.CenterHotkey, err)
		}
	}
	return first
}
