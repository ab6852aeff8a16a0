package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

const endOfDay ClockTime = 24 * 60

// ParseClock parses a 24h "HH:mm" (or "H:mm") string. "24:00" is accepted as
// end of day.
func ParseClock(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || len(h) == 0 || len(h) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day out of range %q", s)
	}
	c := ClockTime(hour*60 + minute)
	if c > endOfDay {
		return 0, fmt.Errorf("time of day out of range %q", s)
	}
	return c, nil
}

func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// DayHours returns the window that applies on t's weekday. Sunday is closed.
func DayHours(t time.Time, wh models.WorkingHours) (from, to ClockTime, open bool) {
	var w models.DayWindow
	switch t.Weekday() {
	case time.Sunday:
		return 0, 0, false
	case time.Saturday:
		w = wh.Saturday
	default:
		w = wh.Weekday
	}

	from, err := ParseClock(w.Start)
	if err != nil {
		return 0, 0, false
	}
	to, err = ParseClock(w.End)
	if err != nil || to < from {
		return 0, 0, false
	}
	return from, to, true
}

// IsWithinWorkingHours reports whether the wall-clock time of t falls inside
// the window for its day, both ends included. t is read in its own location.
func IsWithinWorkingHours(t time.Time, wh models.WorkingHours) bool {
	from, to, open := DayHours(t, wh)
	if !open {
		return false
	}
	c := ClockOf(t)
	return c >= from && c <= to
}

// FitsWorkingHours checks both ends of w and that w does not spill into
// another day.
func FitsWorkingHours(w Window, wh models.WorkingHours) bool {
	if !w.Valid() {
		return false
	}
	sy, sm, sd := w.Start.Date()
	ey, em, ed := w.End.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}
	return IsWithinWorkingHours(w.Start, wh) && IsWithinWorkingHours(w.End, wh)
}

// ValidateWorkingHours rejects windows that cannot be parsed or end before
// they start.
func ValidateWorkingHours(wh models.WorkingHours) error {
	for name, w := range map[string]models.DayWindow{"weekday": wh.Weekday, "saturday": wh.Saturday} {
		from, err := ParseClock(w.Start)
		if err != nil {
			return fmt.Errorf("%s start: %w", name, err)
		}
		to, err := ParseClock(w.End)
		if err != nil {
			return fmt.Errorf("%s end: %w", name, err)
		}
		if to < from {
			return fmt.Errorf("%s window ends before it starts", name)
		}
	}
	return nil
}
