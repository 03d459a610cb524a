package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// DaysPerWeek is the length of a week plan window
const DaysPerWeek = 7

// CalendarDate truncates t to midnight UTC of its own calendar date
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return CalendarDate(t).Format(DateLayout)
}

// WeekEndInclusive returns the last calendar day of the 7-day window starting at start.
// Arithmetic is done on UTC dates so daylight-saving shifts never move the result.
func WeekEndInclusive(start time.Time) time.Time {
	return CalendarDate(start).AddDate(0, 0, DaysPerWeek-1)
}

// ComputeWeekEndInclusive is the string form of WeekEndInclusive
func ComputeWeekEndInclusive(start string) (string, error) {
	t, err := ParseDate(start)
	if err != nil {
		return "", err
	}
	return FormatDate(WeekEndInclusive(t)), nil
}
