package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 100 * time.Millisecond

// Watcher reloads the config whenever the main file or one of its includes is
// written. Editors that replace files atomically show up as Create events, so
// the containing directories are watched instead of the files themselves.
type Watcher struct {
	path     string
	debounce time.Duration

	mu       sync.Mutex
	watched  map[string]struct{} // canonical paths that trigger a reload
	dirs     map[string]struct{}
	onChange []func(*LoadResult)
	timer    *time.Timer

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	errChan chan error
}

// NewWatcher starts watching path and the files it loaded in res.
func NewWatcher(path string, res *LoadResult) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		debounce: DefaultWatchDebounce,
		watched:  make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
	}

	files := []string{path}
	if res != nil {
		files = append(files, res.Files...)
	}
	if err := w.track(files); err != nil {
		_ = w.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// OnChange registers a callback invoked with every successful reload.
func (w *Watcher) OnChange(cb func(*LoadResult)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, cb)
}

// Errors reports failed reloads. The previous config stays in effect.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

func (w *Watcher) Close() error {
	w.cancel()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) track(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, f := range files {
		canon, err := canonicalPath(f)
		if err != nil {
			return err
		}
		w.watched[canon] = struct{}{}
		// The main file may be named by a symlink; match both spellings.
		if abs, err := filepath.Abs(f); err == nil {
			w.watched[abs] = struct{}{}
		}

		dir := filepath.Dir(canon)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	return nil
}

func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[abs]
	return ok
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}

			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(w.debounce, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	res, err := LoadFromPath(w.path)
	if err != nil {
		w.report(fmt.Errorf("reload config: %w", err))
		return
	}
	// New includes may have appeared.
	if err := w.track(res.Files); err != nil {
		w.report(err)
	}

	w.mu.Lock()
	callbacks := append([]func(*LoadResult){}, w.onChange...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(res)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}
