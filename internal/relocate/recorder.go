package relocate

import (
	"context"

	"log/slog"

	"snapsort/internal/logging"
)

// LogRecorder emits move records as structured log lines.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder builds the default record sink backed by the given logger.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logging.NewComponentLogger(logger, "mover")}
}

func (l *LogRecorder) Record(ctx context.Context, rec Record) error {
	logging.WithContext(ctx, l.logger).Info("file moved",
		logging.String(logging.FieldFile, rec.OriginalName),
		logging.String(logging.FieldBucket, rec.Label),
		logging.String("final_path", rec.FinalPath),
	)
	return nil
}
