package bucket

import (
	"testing"
	"time"
)

var origin = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

func TestForWorkedExample(t *testing.T) {
	instant := time.Date(2025, time.May, 13, 9, 30, 0, 0, time.Local)
	b := For(instant, origin, 10)
	if b.Label != "2025.05.11-2025.05.20" {
		t.Fatalf("label = %q, want 2025.05.11-2025.05.20", b.Label)
	}
}

func TestForBeforeOrigin(t *testing.T) {
	instant := time.Date(2025, time.April, 25, 23, 59, 0, 0, time.UTC)
	b := For(instant, origin, 10)
	if b.Label != "2025.04.21-2025.04.30" {
		t.Fatalf("label = %q, want 2025.04.21-2025.04.30", b.Label)
	}
}

func TestForOriginDay(t *testing.T) {
	b := For(origin, origin, 10)
	if b.Label != "2025.05.01-2025.05.10" {
		t.Fatalf("label = %q, want 2025.05.01-2025.05.10", b.Label)
	}
	if !b.Start.Equal(origin) {
		t.Fatalf("start = %v, want %v", b.Start, origin)
	}
}

func TestForIsPureFunctionOfDate(t *testing.T) {
	morning := time.Date(2025, time.June, 3, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, time.June, 3, 23, 59, 59, 0, time.UTC)
	if For(morning, origin, 10).Label != For(night, origin, 10).Label {
		t.Fatal("instants on the same date must share a bucket")
	}
}

func TestBucketsTileWithoutGaps(t *testing.T) {
	day := time.Date(2024, time.November, 20, 12, 0, 0, 0, time.UTC)
	prev := For(day, origin, 10)
	for i := 0; i < 50; i++ {
		day = day.AddDate(0, 0, 1)
		cur := For(day, origin, 10)
		if cur.Label == prev.Label {
			continue
		}
		if !prev.End.AddDate(0, 0, 1).Equal(cur.Start) {
			t.Fatalf("gap between %q and %q", prev.Label, cur.Label)
		}
		prev = cur
	}
}

func TestBucketSpansPeriod(t *testing.T) {
	for _, period := range []int{1, 7, 10, 30} {
		b := For(time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC), origin, period)
		days := int(b.End.Sub(b.Start).Hours()/24) + 1
		if days != period {
			t.Fatalf("period %d: bucket spans %d days", period, days)
		}
	}
}

func TestParseLabelRoundTrip(t *testing.T) {
	b := For(time.Date(2025, time.May, 13, 9, 0, 0, 0, time.UTC), origin, 10)
	parsed, ok := ParseLabel(b.Label)
	if !ok {
		t.Fatalf("ParseLabel(%q) rejected a generated label", b.Label)
	}
	if !parsed.Start.Equal(b.Start) || !parsed.End.Equal(b.End) {
		t.Fatalf("parsed = %+v, want %+v", parsed, b)
	}
	if parsed.Days() != 10 {
		t.Fatalf("days = %d, want 10", parsed.Days())
	}
}

func TestParseLabelRejectsGarbage(t *testing.T) {
	for _, name := range []string{
		"",
		"screenshots",
		"2025.05.11",
		"2025.05.20-2025.05.11",
		"2025-05-11-2025-05-20",
		"2025.05.11_2025.05.20",
	} {
		if _, ok := ParseLabel(name); ok {
			t.Fatalf("ParseLabel(%q) accepted a malformed label", name)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{-6, 10, -1},
		{-10, 10, -1},
		{-11, 10, -2},
		{0, 10, 0},
		{9, 10, 0},
		{10, 10, 1},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
