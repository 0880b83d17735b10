package util

import "time"

// DateLayout is the calendar-day format used across the planner.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateIn formats t as YYYY-MM-DD in the given location.
func DateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// NextDayIn formats the calendar day after t, in the given location.
func NextDayIn(t time.Time, loc *time.Location) string {
	return t.In(loc).AddDate(0, 0, 1).Format(DateLayout)
}

// ValidDate reports whether value parses as YYYY-MM-DD.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// ValidClock reports whether value parses as HH:MM.
func ValidClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
