// Package sweep reclassifies files that already exist under the watch root.
// It runs once at startup, strictly before the watch loop begins, so the two
// producers never race against the same tree.
package sweep

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"snapsort/internal/classify"
	"snapsort/internal/logging"
	"snapsort/internal/notify"
	"snapsort/internal/services"
)

// Summary reports what one sweep pass did.
type Summary struct {
	Scanned  int
	Moved    int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Sweeper walks the watch root and routes eligible files through the shared
// classify path.
type Sweeper struct {
	classifier *classify.Classifier
	logger     *slog.Logger
	notifier   notify.Service
}

// New constructs a sweeper. notifier may be nil.
func New(classifier *classify.Classifier, logger *slog.Logger, notifier notify.Service) *Sweeper {
	if notifier == nil {
		notifier = notify.Noop()
	}
	return &Sweeper{
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "sweep"),
		notifier:   notifier,
	}
}

// Run walks the tree once. Per-file failures are logged and counted but never
// abort the pass; only a missing or unreadable watch root is fatal.
//
// Files under the destination root are excluded so an archive that lives
// inside (or equals) the watch root is never treated as unsorted input. Both
// roots are resolved through symlinks before comparison; the check is not
// hardened against case-insensitive filesystems.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	policy := s.classifier.Policy()

	watchRoot, err := resolveRoot(policy.WatchRoot)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "sweep", "resolve watch root", "Watch root is not accessible", err)
	}
	if err := os.MkdirAll(policy.DestRoot, 0o755); err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "sweep", "ensure destination root", "Destination root cannot be created", err)
	}
	destRoot, err := resolveRoot(policy.DestRoot)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "sweep", "resolve destination root", "Destination root is not accessible", err)
	}

	s.logger.Info("processing existing files", logging.String("watch_root", watchRoot))

	var summary Summary
	start := time.Now()

	walkErr := filepath.WalkDir(watchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == watchRoot {
				return err
			}
			s.logger.Warn("skipping unreadable path", logging.String(logging.FieldFile, path), logging.Error(err))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if underRoot(destRoot, resolvePath(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !policy.MatchesExtension(d.Name()) {
			return nil
		}
		if underRoot(destRoot, resolvePath(path)) {
			summary.Skipped++
			return nil
		}

		summary.Scanned++
		if _, err := s.classifier.Classify(ctx, path); err != nil {
			summary.Failed++
			return nil
		}
		summary.Moved++
		return nil
	})
	summary.Duration = time.Since(start)

	if walkErr != nil && ctx.Err() == nil {
		return summary, services.Wrap(services.ErrConfiguration, "sweep", "walk tree", "Failed to enumerate watch root", walkErr)
	}

	s.logger.Info("existing files processed",
		logging.Int("moved", summary.Moved),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("duration", summary.Duration),
	)
	if err := s.notifier.SweepCompleted(ctx, summary.Moved, summary.Failed, summary.Duration); err != nil {
		s.logger.Warn("sweep notification not delivered", logging.Error(err))
	}
	return summary, nil
}

// resolveRoot canonicalizes a root for prefix comparison.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// resolvePath canonicalizes a walked path, falling back to the raw path when
// the entry vanished mid-walk.
func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// underRoot reports whether path lies at or below root.
func underRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
