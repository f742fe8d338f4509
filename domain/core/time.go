package core

import (
	"time"
)

// Clock supplies the current time. Engines never read the wall clock themselves;
// the application layer asks a Clock and passes the instant down explicitly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Used for replays and tests.
type FixedClock struct {
	At time.Time
}

// NewFixedClock creates a clock frozen at t
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{At: t}
}

// Now returns the frozen instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// Day is a 24 hour duration
const Day = 24 * time.Hour

// Week is a 7 day duration
const Week = 7 * Day

// WeeksBetween returns the fractional number of weeks from a to b
func WeeksBetween(a, b time.Time) float64 {
	return float64(b.Sub(a)) / float64(Week)
}

// DaysBetween returns the fractional number of days from a to b
func DaysBetween(a, b time.Time) float64 {
	return float64(b.Sub(a)) / float64(Day)
}
