// Package relocate moves files into dated bucket directories without ever
// overwriting an existing file. Collision handling for a given bucket is
// serialized, so two files arriving with the same name cannot observe the
// same free candidate path.
package relocate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"log/slog"

	"snapsort/internal/fileutil"
	"snapsort/internal/logging"
	"snapsort/internal/services"
)

const maxNameAttempts = 10000

// Record describes one completed move, emitted for observability. Failure to
// emit a record never rolls the move back.
type Record struct {
	OriginalName string
	Label        string
	FinalPath    string
	MovedAt      time.Time
}

// Recorder receives a Record after each successful move.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Relocator places files under destRoot/<label>/.
type Relocator struct {
	destRoot string
	logger   *slog.Logger
	recorder Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs a relocator rooted at destRoot. recorder may be nil.
func New(destRoot string, logger *slog.Logger, recorder Recorder) *Relocator {
	return &Relocator{
		destRoot: destRoot,
		logger:   logging.NewComponentLogger(logger, "relocator"),
		recorder: recorder,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Place moves src into destRoot/label, disambiguating the filename with a
// numeric suffix when the candidate already exists, and returns the final
// path. The bucket directory is created lazily on first use.
func (r *Relocator) Place(ctx context.Context, src, label string) (string, error) {
	lock := r.lockFor(label)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Join(r.destRoot, label)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "relocator", "ensure bucket directory", "Failed to create bucket directory", err)
	}

	name := filepath.Base(src)
	target, err := nextFreePath(dir, name)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "relocator", "allocate filename", "Unable to allocate destination filename", err)
	}

	if err := r.move(src, target); err != nil {
		return "", err
	}

	if r.recorder != nil {
		rec := Record{OriginalName: name, Label: label, FinalPath: target, MovedAt: time.Now()}
		if err := r.recorder.Record(ctx, rec); err != nil {
			r.logger.Warn("move record emission failed",
				logging.String(logging.FieldFile, name),
				logging.String(logging.FieldBucket, label),
				logging.Error(err),
			)
		}
	}
	return target, nil
}

// move renames src onto target, falling back to copy-then-delete across
// device boundaries. Either the source is fully gone and the destination
// fully present, or the source is left untouched and nothing lands at the
// destination.
func (r *Relocator) move(src, target string) error {
	renameErr := os.Rename(src, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return services.Wrap(services.ErrTransient, "relocator", "move file", "Failed to move file into bucket", renameErr)
	}

	// Cross-device: stage the copy under a temporary name so a failure never
	// leaves a partial file at the final path.
	tmp, err := stagingPath(target)
	if err != nil {
		return services.Wrap(services.ErrTransient, "relocator", "allocate staging name", "Unable to allocate staging filename", err)
	}
	if err := fileutil.CopyFileVerified(src, tmp); err != nil {
		return services.Wrap(services.ErrTransient, "relocator", "copy file", "Failed to copy file across devices", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return services.Wrap(services.ErrTransient, "relocator", "publish copy", "Failed to finalize cross-device copy", err)
	}
	if err := os.Remove(src); err != nil {
		// The copy succeeded but the source cannot be released; withdraw the
		// destination so the file is not duplicated. The source stays intact.
		_ = os.Remove(target)
		return services.Wrap(services.ErrTransient, "relocator", "remove source", "Failed to remove source after cross-device copy", err)
	}
	return nil
}

// stagingPath picks a free name next to target for staging a cross-device
// copy. An existing file, including a stale leftover from a crashed copy, is
// never truncated; the suffix loop walks past it instead.
func stagingPath(target string) (string, error) {
	return nextFreePath(filepath.Dir(target), filepath.Base(target)+".partial")
}

func (r *Relocator) lockFor(label string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[label]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[label] = lock
	}
	return lock
}

// nextFreePath returns dir/name, or dir/name_N.ext for the smallest N that
// does not collide with an existing file.
func nextFreePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	exists, err := pathExists(candidate)
	if err != nil {
		return "", err
	}
	if !exists {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxNameAttempts; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		exists, err := pathExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted filename slots for %s in %s", name, dir)
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
