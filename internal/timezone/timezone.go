package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone for unknown names.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock yields the current time in a fixed location. Use cases take a Clock
// so tests can pin "now".
type Clock func() time.Time

func ClockIn(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
