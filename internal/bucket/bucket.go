// Package bucket maps instants onto fixed-length date windows anchored at an
// origin date. Windows tile the date axis in both directions with no gaps and
// no overlaps, so two instants share a bucket exactly when their calendar
// dates fall in the same period-length window measured from the origin.
package bucket

import (
	"strings"
	"time"
)

const labelLayout = "2006.01.02"

// Bucket is one dated window. Start and End are inclusive calendar dates at
// UTC midnight; Label is the directory name derived from them.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// For returns the bucket containing t for the given origin and period length.
// Instants before the origin map to negative window indices rather than being
// pulled toward the origin window.
func For(t, origin time.Time, periodDays int) Bucket {
	delta := dateOrdinal(t) - dateOrdinal(origin)
	index := floorDiv(delta, periodDays)

	oy, om, od := origin.Date()
	start := time.Date(oy, om, od, 0, 0, 0, 0, time.UTC).AddDate(0, 0, index*periodDays)
	end := start.AddDate(0, 0, periodDays-1)

	return Bucket{
		Label: start.Format(labelLayout) + "-" + end.Format(labelLayout),
		Start: start,
		End:   end,
	}
}

// ParseLabel reconstructs a bucket from a directory name. The second return
// value reports whether name is a well-formed bucket label.
func ParseLabel(name string) (Bucket, bool) {
	first, second, found := strings.Cut(name, "-")
	if !found {
		return Bucket{}, false
	}
	start, err := time.ParseInLocation(labelLayout, first, time.UTC)
	if err != nil {
		return Bucket{}, false
	}
	end, err := time.ParseInLocation(labelLayout, second, time.UTC)
	if err != nil {
		return Bucket{}, false
	}
	if end.Before(start) {
		return Bucket{}, false
	}
	return Bucket{Label: name, Start: start, End: end}, true
}

// Days returns the inclusive length of the bucket window in days.
func (b Bucket) Days() int {
	return dateOrdinal(b.End) - dateOrdinal(b.Start) + 1
}

// dateOrdinal counts whole days since the Unix epoch for t's calendar date,
// ignoring the time of day and any zone offset.
func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// floorDiv divides rounding toward negative infinity, unlike Go's
// truncating integer division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
