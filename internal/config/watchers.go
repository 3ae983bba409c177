package config

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// RulesWatcher watches the detector-threshold overlay file and notifies
// registered callbacks when it changes, without restarting the process.
// The main Config (stores, cache, pipeline sizing) is loaded once at
// startup and is not part of this hot-reload path.
type RulesWatcher struct {
	overlayPath string
	logger      logger.Logger

	mu       sync.RWMutex
	rules    RulesConfig
	watchers []func(RulesConfig)
	stopCh   chan struct{}
}

// NewRulesWatcher seeds the watcher with the rules already resolved by
// Load (env vars / defaults), so operators without an overlay file still
// get a valid starting point.
func NewRulesWatcher(overlayPath string, initial RulesConfig, log logger.Logger) *RulesWatcher {
	return &RulesWatcher{
		overlayPath: overlayPath,
		logger:      log,
		rules:       initial,
		stopCh:      make(chan struct{}),
	}
}

// Start begins watching the overlay file. It is a no-op (returns nil
// immediately) when the file does not exist, since the overlay is
// optional.
func (w *RulesWatcher) Start(ctx context.Context) error {
	if _, err := os.Stat(w.overlayPath); err != nil {
		w.logger.Info("rules overlay not present, skipping hot-reload", "path", w.overlayPath)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create rules file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.overlayPath); err != nil {
		return fmt.Errorf("failed to watch rules overlay: %w", err)
	}

	if err := w.reload(); err != nil {
		w.logger.Warn("initial rules overlay load failed, keeping defaults", "error", err)
	}

	w.logger.Info("rules overlay watcher started", "path", w.overlayPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Info("rules overlay changed, reloading", "file", event.Name)
				if err := w.reload(); err != nil {
					w.logger.Error("failed to reload rules overlay", "error", err)
					continue
				}
				w.notify()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("rules overlay watcher error", "error", err)

		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil
		}
	}
}

// Stop terminates the watcher loop.
func (w *RulesWatcher) Stop() {
	close(w.stopCh)
}

// RegisterWatcher adds a callback invoked with the new RulesConfig after a
// successful reload.
func (w *RulesWatcher) RegisterWatcher(callback func(RulesConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watchers = append(w.watchers, callback)
}

// Current returns the most recently loaded thresholds (thread-safe).
func (w *RulesWatcher) Current() RulesConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rules
}

func (w *RulesWatcher) reload() error {
	data, err := os.ReadFile(w.overlayPath)
	if err != nil {
		return err
	}

	var overlay RulesConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("invalid rules overlay yaml: %w", err)
	}
	if overlay.CorroborationStrong <= overlay.CorroborationModerate ||
		overlay.CorroborationModerate <= overlay.CorroborationWeak {
		return fmt.Errorf("rejected rules overlay: thresholds must be strictly descending")
	}

	w.mu.Lock()
	overlay.OverlayPath = w.overlayPath
	w.rules = overlay
	w.mu.Unlock()

	return nil
}

func (w *RulesWatcher) notify() {
	w.mu.RLock()
	rules := w.rules
	watchers := make([]func(RulesConfig), len(w.watchers))
	copy(watchers, w.watchers)
	w.mu.RUnlock()

	for _, callback := range watchers {
		go func(cb func(RulesConfig)) {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("rules watcher callback panicked", "panic", fmt.Sprintf("%v", r))
				}
			}()
			cb(rules)
		}(callback)
	}
}
