package kickoff

import (
	"fmt"
	"strings"
	"time"
)

// Convention says how to read a source timestamp that carries no explicit
// offset. Strings with an offset or "Z" suffix are always trusted as-is.
type Convention int

const (
	// ConventionUTC: naive timestamps are already UTC
	ConventionUTC Convention = iota
	// ConventionEastern: naive timestamps are US Eastern civil time
	ConventionEastern
)

func (c Convention) String() string {
	if c == ConventionEastern {
		return "eastern"
	}
	return "utc"
}

// naiveLayouts are the offset-free shapes the schedule feeds produce
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses a raw provider timestamp into a UTC instant.
// An explicit offset or trailing Z wins over the convention; otherwise the
// wall-clock fields are interpreted per conv.
func ParseTimestamp(raw string, conv Convention) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range naiveLayouts {
		wall, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if conv == ConventionEastern {
			return easternToUTC(wall), nil
		}
		return wall.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unparsable timestamp %q", raw)
}

// easternToUTC converts wall-clock fields read as US Eastern civil time to
// the UTC instant, applying the standard US daylight-saving calendar:
// UTC-4 from 02:00 on the second Sunday of March until 02:00 on the first
// Sunday of November, UTC-5 otherwise. The Sundays are computed per-year.
func easternToUTC(wall time.Time) time.Time {
	if easternDST(wall) {
		return wall.Add(4 * time.Hour).UTC()
	}
	return wall.Add(5 * time.Hour).UTC()
}

// easternDST reports whether the given Eastern wall-clock time falls inside
// the daylight-saving window of its year
func easternDST(wall time.Time) bool {
	year := wall.Year()
	start := time.Date(year, time.March, nthSunday(year, time.March, 2), 2, 0, 0, 0, time.UTC)
	end := time.Date(year, time.November, nthSunday(year, time.November, 1), 2, 0, 0, 0, time.UTC)

	probe := time.Date(year, wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)
	return !probe.Before(start) && probe.Before(end)
}

// EasternWall converts a UTC instant to US Eastern wall-clock time, for
// callers that need the civil weekday of a kickoff (Sunday slate detection).
func EasternWall(t time.Time) time.Time {
	guess := t.UTC().Add(-5 * time.Hour)
	if easternDST(guess) {
		return t.UTC().Add(-4 * time.Hour)
	}
	return guess
}

// nthSunday returns the day of month of the nth Sunday
func nthSunday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	day := 1 + (7-int(first))%7
	return day + 7*(n-1)
}
