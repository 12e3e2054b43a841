//go:build linux

package timestamp

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the file's creation instant. Filesystems that do not
// record a birth time report the status-change time instead, which matches
// the historical st_ctime behaviour of this source.
func birthTime(path string) (time.Time, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_CTIME, &stx); err != nil {
		return time.Time{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}
	ts := stx.Ctime
	if stx.Mask&unix.STATX_BTIME != 0 && (stx.Btime.Sec != 0 || stx.Btime.Nsec != 0) {
		ts = stx.Btime
	}
	return time.Unix(ts.Sec, int64(ts.Nsec)), nil
}
