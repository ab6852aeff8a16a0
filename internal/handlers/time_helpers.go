package handlers

import (
	"strings"
	"time"
)

// Layouts accepted for timestamps in request bodies and query strings.
// Values without an offset are read in the salon's timezone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimestamp(loc *time.Location, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	var err error
	for _, layout := range localLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parseDate reads "YYYY-MM-DD" (or a full timestamp) as the start of that day.
func parseDate(loc *time.Location, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return d, nil
	}
	return parseTimestamp(loc, s)
}

// endOfDay turns a bare date into the last instant of that day so inclusive
// ranges cover it entirely.
func endOfDay(loc *time.Location, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return parseTimestamp(loc, s)
}
