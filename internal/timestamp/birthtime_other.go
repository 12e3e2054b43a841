//go:build !linux

package timestamp

import "time"

// birthTime falls back to the modification time on platforms where the
// creation instant is not portably available.
func birthTime(path string) (time.Time, error) {
	return modTime(path)
}
