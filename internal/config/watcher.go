package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ChangeCallback is called with the freshly loaded configuration after the
// config file changes on disk
type ChangeCallback func(cfg *Config) error

// Watcher monitors the configuration file and reloads it on change
type Watcher struct {
	watcher            *fsnotify.Watcher
	loader             *Loader
	configPath         string
	stabilityThreshold time.Duration
	onChange           ChangeCallback
	done               chan struct{}
	debounceTimer      *time.Timer
	debounceMu         sync.Mutex
	stopOnce           sync.Once
}

// NewWatcher creates a new config watcher for the loader's resolved path
func NewWatcher(loader *Loader, onChange ChangeCallback) (*Watcher, error) {
	configPath, err := loader.Path()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher:            watcher,
		loader:             loader,
		configPath:         configPath,
		stabilityThreshold: 100 * time.Millisecond,
		onChange:           onChange,
		done:               make(chan struct{}),
	}, nil
}

// Start starts watching the configuration file
func (w *Watcher) Start() error {
	// Watch the parent directory so editors that replace the file
	// (write to temp, rename over) still trigger events
	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go w.eventLoop()

	log.Info().
		Str("path", w.configPath).
		Msg("Config watcher started")

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
	})

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// eventLoop processes file system events
func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("Config watcher error")

		case <-w.done:
			return
		}
	}
}

// handleEvent debounces write and create events on the config file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.configPath) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.stabilityThreshold, func() {
		select {
		case <-w.done:
			return
		default:
			w.reload()
		}
	})
}

// reload re-reads the config file and delivers it to the callback. A config
// file that fails validation keeps the previous configuration in effect.
func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		log.Error().
			Err(err).
			Str("path", w.configPath).
			Msg("Ignoring config change")
		return
	}

	if w.onChange != nil {
		if err := w.onChange(cfg); err != nil {
			log.Error().Err(err).Msg("Error applying config change")
		}
	}
}
