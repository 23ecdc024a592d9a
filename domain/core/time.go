package core

import (
	"time"
)

// DateFormat is the calendar-day granularity used for session bucketing.
// Sessions belong to the server-local day on which they started.
const DateFormat = "2006-01-02"

// Date represents a calendar day in the server's local timezone
type Date string

// DateOf returns the calendar day a given instant falls on
func DateOf(t time.Time) Date {
	return Date(t.Local().Format(DateFormat))
}

// Today returns the current calendar day
func Today() Date {
	return DateOf(time.Now())
}

// String returns the YYYY-MM-DD representation
func (d Date) String() string {
	return string(d)
}

// IsZero checks if the date is empty
func (d Date) IsZero() bool {
	return d == ""
}

// Time parses the date back into a local midnight instant
func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation(DateFormat, string(d), time.Local)
}
