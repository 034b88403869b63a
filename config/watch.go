package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/countdown-tracker/core"
)

// DefaultReloadDelay debounces editors that write a file in several steps
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk
type Watcher struct {
	path     string
	delay    time.Duration
	log      zerolog.Logger
	reloadFn func(*Config) error

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
}

// NewWatcher creates a watcher calling reloadFn with every valid new config.
// Invalid files are logged and skipped, the previous config stays in effect
func NewWatcher(path string, delay time.Duration, log zerolog.Logger, reloadFn func(*Config) error) *Watcher {
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	return &Watcher{
		path:     filepath.Clean(path),
		delay:    delay,
		log:      log,
		reloadFn: reloadFn,
	}
}

// Start watches the parent directory so atomic rename-on-save is seen.
// Events are processed until ctx is done
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.watcher = fw

	core.Go(func() { w.processEvents(ctx) })

	w.log.Info().Str("path", w.path).Msg("watching config")
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("config changed")
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(w.delay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadValid(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("config reload skipped")
		return
	}
	if err := w.reloadFn(cfg); err != nil {
		w.log.Error().Err(err).Msg("failed to apply reloaded config")
		return
	}
	w.log.Info().Str("target", cfg.Target).Msg("config reloaded")
}
