package timestamp

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureSupported reports whether embedded capture-time reading is compiled
// into this build.
func CaptureSupported() bool {
	return true
}

// captureTime reads the EXIF capture instant (DateTimeOriginal, falling back
// to DateTime) from an image file.
func captureTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return meta.DateTime()
}
