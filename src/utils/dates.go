package utils

import (
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when a renewal interval is not a positive
// number of months.
var ErrInvalidInterval = fmt.Errorf("interval must be a positive number of months")

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances a calendar date by months whole months. The day of month
// is clamped to the last day of the target month, so Jan 31 + 1 month is the
// last day of February.
func AddMonths(base time.Time, months int) (time.Time, error) {
	if months <= 0 {
		return time.Time{}, ErrInvalidInterval
	}
	base = DateOnly(base)

	total := int(base.Month()) - 1 + months
	year := base.Year() + total/12
	month := time.Month(total%12 + 1)

	day := base.Day()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// DueDateToThisYear moves a recorded due date onto the calendar year of now,
// keeping its month and day (Feb 29 becomes Feb 28 outside leap years). With
// rollElapsed set, a month/day strictly before today lands in next year.
func DueDateToThisYear(recorded, now time.Time, rollElapsed bool) time.Time {
	today := DateOnly(now)
	due := onYear(recorded, today.Year())
	if rollElapsed && due.Before(today) {
		due = onYear(recorded, today.Year()+1)
	}
	return due
}

func onYear(t time.Time, year int) time.Time {
	day := t.Day()
	if last := DaysIn(year, t.Month()); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay and EndOfDay bound the calendar day of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthToDate returns the range from the first day of t's month to the end of t's day.
func MonthToDate(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, EndOfDay(t, loc)
}

// ParseDate parses a "2006-01-02" date or an RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(ShortDashDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s or RFC3339", value, ShortDashDateLayout)
	}
	return t, nil
}
