// Package classify runs the shared resolve-map-relocate pipeline. Both the
// startup sweep and the live watch loop converge here, so a file is handled
// identically regardless of which producer noticed it.
package classify

import (
	"context"

	"log/slog"

	"github.com/google/uuid"

	"snapsort/internal/bucket"
	"snapsort/internal/logging"
	"snapsort/internal/notify"
	"snapsort/internal/relocate"
	"snapsort/internal/services"
	"snapsort/internal/timestamp"
)

// Classifier routes one file through timestamp resolution, bucket mapping,
// and relocation. Errors returned are per-file and transient; callers count
// them but never abort on one.
type Classifier struct {
	policy    Policy
	relocator *relocate.Relocator
	logger    *slog.Logger
	notifier  notify.Service
}

// New constructs a classifier. notifier may be nil.
func New(policy Policy, relocator *relocate.Relocator, logger *slog.Logger, notifier notify.Service) *Classifier {
	if notifier == nil {
		notifier = notify.Noop()
	}
	return &Classifier{
		policy:    policy,
		relocator: relocator,
		logger:    logging.NewComponentLogger(logger, "classify"),
		notifier:  notifier,
	}
}

// Policy returns the immutable policy the classifier runs under.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Classify resolves the file's instant, maps it onto a bucket, and moves it
// there, returning the final path. The source path is stale after a
// successful return.
func (c *Classifier) Classify(ctx context.Context, path string) (string, error) {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, c.logger)

	resolved, err := timestamp.Resolve(path, c.policy.Source)
	if err != nil {
		return "", c.fail(ctx, logger, path, services.Wrap(services.ErrTransient, "classify", "resolve timestamp", "Failed to resolve file timestamp", err))
	}

	b := bucket.For(resolved, c.policy.Origin, c.policy.PeriodDays)
	final, err := c.relocator.Place(ctx, path, b.Label)
	if err != nil {
		return "", c.fail(ctx, logger, path, err)
	}

	logger.Debug("file classified",
		logging.String(logging.FieldFile, path),
		logging.String(logging.FieldBucket, b.Label),
		logging.Time("resolved", resolved),
	)
	return final, nil
}

func (c *Classifier) fail(ctx context.Context, logger *slog.Logger, path string, err error) error {
	logger.Warn("classification failed",
		logging.String(logging.FieldFile, path),
		logging.Error(err),
	)
	if notifyErr := c.notifier.ClassifyFailed(ctx, path, err); notifyErr != nil {
		logger.Warn("failure notification not delivered", logging.Error(notifyErr))
	}
	return err
}
