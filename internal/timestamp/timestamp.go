// Package timestamp resolves the authoritative instant a file is classified
// by. Three sources are supported: the modification time, the creation time
// (birth time where the filesystem records one), and an embedded EXIF capture
// time that degrades to the modification time whenever the tag cannot be read.
package timestamp

import (
	"fmt"
	"os"
	"time"
)

// Source selects which file instant classification uses.
type Source string

const (
	SourceModification Source = "modification"
	SourceCreation     Source = "creation"
	SourceCapture      Source = "embedded-capture"
)

// ParseSource converts a configuration string into a Source.
func ParseSource(value string) (Source, error) {
	switch Source(value) {
	case SourceModification, SourceCreation, SourceCapture:
		return Source(value), nil
	default:
		return "", fmt.Errorf("unknown time source %q", value)
	}
}

// Downgrade returns the source to run with. When embedded-capture reading is
// not available in this build the whole run drops to modification time; the
// caller logs the single warning. This is decided once at startup, never per
// file.
func Downgrade(source Source) (Source, bool) {
	if source == SourceCapture && !CaptureSupported() {
		return SourceModification, true
	}
	return source, false
}

// Resolve returns the instant to classify path by. It only fails when the
// file itself cannot be inspected (vanished, permission denied); a missing or
// malformed capture tag silently falls back to the modification time.
func Resolve(path string, source Source) (time.Time, error) {
	switch source {
	case SourceCreation:
		return birthTime(path)
	case SourceCapture:
		if captured, err := captureTime(path); err == nil {
			return captured, nil
		}
		return modTime(path)
	default:
		return modTime(path)
	}
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
