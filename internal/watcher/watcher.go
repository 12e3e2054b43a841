// Package watcher owns the live watch loop: it subscribes to file-creation
// notifications on the watch root and routes each eligible file through the
// shared classify path after a short settle delay.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	"github.com/fsnotify/fsnotify"

	"snapsort/internal/classify"
	"snapsort/internal/logging"
	"snapsort/internal/services"
)

// State is the watch loop lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Watcher observes direct children of the watch root. Classification runs on
// the single event goroutine, which also serializes filename disambiguation
// for every destination bucket.
type Watcher struct {
	classifier *classify.Classifier
	logger     *slog.Logger
	settle     time.Duration

	mu    sync.Mutex
	state State
	fsw   *fsnotify.Watcher
	quit  chan struct{}
	wg    sync.WaitGroup
}

// New constructs an idle watcher for the classifier's policy.
func New(classifier *classify.Classifier, logger *slog.Logger) *Watcher {
	return &Watcher{
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "watcher"),
		settle:     classifier.Policy().SettleDelay,
		state:      StateIdle,
	}
}

// State returns the current lifecycle position.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start subscribes to creation notifications and begins dispatching. Only an
// idle watcher can start; the transition to running happens exactly once.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		return services.Wrap(services.ErrValidation, "watcher", "start", fmt.Sprintf("watch loop cannot start from state %s", w.state), nil)
	}

	watchRoot := w.classifier.Policy().WatchRoot
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "watcher", "create notifier", "Failed to initialize filesystem notifications", err)
	}
	if err := fsw.Add(watchRoot); err != nil {
		_ = fsw.Close()
		return services.Wrap(services.ErrConfiguration, "watcher", "subscribe", "Watch root cannot be observed", err)
	}

	w.fsw = fsw
	w.quit = make(chan struct{})
	w.state = StateRunning
	w.wg.Add(1)
	go w.loop(ctx, fsw, w.quit)

	w.logger.Info("watch loop started",
		logging.String("watch_root", watchRoot),
		logging.Duration("settle_delay", w.settle),
	)
	return nil
}

// Stop ends notification delivery and waits for an in-flight classification
// to finish. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.state != StateRunning {
		w.mu.Unlock()
		return
	}
	w.state = StateStopping
	quit := w.quit
	fsw := w.fsw
	w.mu.Unlock()

	close(quit)
	_ = fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	w.state = StateStopped
	w.mu.Unlock()
	w.logger.Info("watch loop stopped")
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, quit chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			w.handleCreate(ctx, event.Name, quit)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("notification stream error", logging.Error(err))
		}
	}
}

// handleCreate filters one creation event and, when it names an eligible
// file, classifies it after the settle delay. Per-file failures are already
// logged inside the classify path; the loop keeps observing regardless.
func (w *Watcher) handleCreate(ctx context.Context, path string, quit chan struct{}) {
	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		return
	}
	if !w.classifier.Policy().MatchesExtension(filepath.Base(path)) {
		return
	}

	// Give the writer time to finish flushing before touching the file.
	if w.settle > 0 {
		timer := time.NewTimer(w.settle)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-quit:
			return
		case <-ctx.Done():
			return
		}
	}

	_, _ = w.classifier.Classify(ctx, path)
}
