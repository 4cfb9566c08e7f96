// Package dates provides calendar-date helpers. A date is a time.Time at
// midnight UTC; ranges are closed on both ends.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the storage and wire format for calendar dates.
const Layout = "2006-01-02"

const day = 24 * time.Hour

// Date returns the calendar date for the given year, month and day.
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Parse parses a YYYY-MM-DD value.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	// Timestamps stored as "YYYY-MM-DD HH:MM:SS" carry the date in their prefix.
	if len(value) > len(Layout) && (value[len(Layout)] == ' ' || value[len(Layout)] == 'T') {
		value = value[:len(Layout)]
	}
	parsed, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return parsed, nil
}

// Format renders a date as YYYY-MM-DD.
func Format(date time.Time) string {
	return date.Format(Layout)
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// AddDays moves a date by n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysInclusive counts the days in [start, end]; 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return daysBetween(start, end) + 1
}

// DaysExclusive counts the days in [start, end); 0 when end is not after start.
func DaysExclusive(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return daysBetween(start, end)
}

func daysBetween(start, end time.Time) int {
	return int(Truncate(end).Sub(Truncate(start)) / day)
}

// Min returns the earlier date.
func Min(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later date.
func Max(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
