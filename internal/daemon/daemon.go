package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/engine"
	"github.com/1broseidon/bounce/internal/hotkeys"
	"github.com/1broseidon/bounce/internal/ipc"
	"github.com/1broseidon/bounce/internal/logging"
	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/runtimepath"
	"github.com/1broseidon/bounce/internal/x11"
)

// Options configures Run.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	// Verbose forces debug logging.
	Verbose bool
	// SocketPath overrides the IPC socket location.
	SocketPath string
	Stderr     io.Writer
}

// Run starts the tiling daemon in the foreground and blocks until SIGINT or
// SIGTERM.
func Run(opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.Verbose {
		level = log.DebugLevel
	}
	handler := logging.NewHandler(stderr, level)
	logger := slog.New(handler)
	logger.Info("configuration loaded", "path", path, "files", len(res.Files), "toggle", cfg.ToggleHotkey, "gap", cfg.GapSize)

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer conn.Close()

	host, err := platform.NewX11Host(conn, logger.With("component", "host"))
	if err != nil {
		return err
	}
	defer host.Close()

	engOpts := engine.OptionsFromConfig(cfg)
	engOpts.Logger = logger
	eng := engine.New(host, engOpts)
	defer eng.Disable()

	keys := hotkeys.NewHandler(conn, eng, logger)
	if err := BindHotkeys(keys, cfg); err != nil {
		return fmt.Errorf("failed to register hotkeys: %w", err)
	}

	reloader := NewReloader(ReloaderConfig{
		Path:       path,
		Current:    cfg,
		Tiler:      eng,
		Keys:       keys,
		Level:      handler,
		Logger:     logger,
		ForceDebug: opts.Verbose,
	})

	socketPath := opts.SocketPath
	if socketPath == "" {
		if socketPath, err = runtimepath.SocketPath(); err != nil {
			return err
		}
	}
	server, err := ipc.NewServer(ipc.ServerOptions{
		SocketPath: socketPath,
		Engine:     eng,
		Reload:     reloader.Reload,
		ConfigPath: path,
		Logger:     logger.With("component", "ipc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer server.Stop()

	watcher, err := config.NewWatcher(path, res)
	if err != nil {
		logger.Warn("config watching disabled", "error", err)
	} else {
		defer watcher.Close()
		watcher.OnChange(func(r *config.LoadResult) {
			if err := reloader.Apply(r.Config); err != nil {
				logger.Warn("config reload failed", "error", err)
			}
		})
		done := make(chan struct{})
		defer close(done)
		go func() {
			for {
				select {
				case err := <-watcher.Errors():
					logger.Warn("config watch", "error", err)
				case <-done:
					return
				}
			}
		}()
	}

	if cfg.EnableOnStart {
		eng.Enable()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading config")
				_ = reloader.Reload()
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
			conn.Quit()
			return
		}
	}()

	logger.Info("bounce daemon started", "socket", server.SocketPath(), "enabled", eng.IsEnabled())
	conn.EventLoop()
	return nil
}
