// Package daemon wires the startup sweep and the watch loop together and
// enforces single-instance execution. The sweep always runs to completion
// before the watch loop accepts its first notification, so the two producers
// never operate on the tree at the same time.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"snapsort/internal/classify"
	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/notify"
	"snapsort/internal/preflight"
	"snapsort/internal/relocate"
	"snapsort/internal/sweep"
	"snapsort/internal/watcher"
)

// Daemon coordinates the classification services.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *classify.Classifier
	sweeper    *sweep.Sweeper
	watcher    *watcher.Watcher

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	WatcherState string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies. The classification
// policy is frozen here; a downgraded time source is warned about exactly
// once.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	policy, downgraded, err := classify.PolicyFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build policy: %w", err)
	}
	if downgraded {
		logger.Warn("embedded-capture reading is unavailable in this build; using modification time for the whole run",
			logging.String(logging.FieldEventType, "time_source_downgraded"),
		)
	}

	notifier := notify.NewService(cfg)
	relocator := relocate.New(policy.DestRoot, logger, relocate.NewLogRecorder(logger))
	classifier := classify.New(policy, relocator, logger, notifier)

	lockPath := filepath.Join(cfg.Paths.LogDir, "snapsortd.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		classifier: classifier,
		sweeper:    sweep.New(classifier, logger, notifier),
		watcher:    watcher.New(classifier, logger),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, runs preflight checks and the optional
// startup sweep, then begins watching. Any failure here is fatal and leaves
// the process not watching.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("ensure lock directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another snapsort daemon instance is already running")
	}

	if _, err := preflight.Run(d.cfg); err != nil {
		_ = d.lock.Unlock()
		return err
	}

	if d.classifier.Policy().ProcessExisting {
		if _, err := d.sweeper.Run(ctx); err != nil {
			_ = d.lock.Unlock()
			return fmt.Errorf("startup sweep: %w", err)
		}
	}

	if err := d.watcher.Start(ctx); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("start watch loop: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("snapsort daemon started",
		logging.String("watch_root", d.cfg.Paths.WatchDir),
		logging.String("dest_root", d.cfg.Paths.DestDir),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Stop ends notification intake, lets an in-flight classification finish,
// and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.watcher.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("snapsort daemon stopped")
}

// Sweep runs one reclassification pass without starting the watch loop.
func (d *Daemon) Sweep(ctx context.Context) (sweep.Summary, error) {
	if _, err := preflight.Run(d.cfg); err != nil {
		return sweep.Summary{}, err
	}
	return d.sweeper.Run(ctx)
}

// Status reports runtime information.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		WatcherState: d.watcher.State().String(),
		LockFilePath: d.lockPath,
	}
}
