package domain

import (
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a time within a single day, stored as minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// At anchors the time of day on a calendar date, keeping the date's location.
func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), int(t)/60, int(t)%60, 0, 0, day.Location())
}

// DateOnly strips the time component so every booking_date compares equal for
// the same calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var ErrInvalidInterval = errors.New("invalid time interval")

// TimeInterval is a half-open [Start, End) range within one day.
// Start < End always holds for intervals built through NewTimeInterval.
type TimeInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewTimeInterval(start, end TimeOfDay) (TimeInterval, error) {
	if start >= end {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals share any time.
// Touching intervals ([10:00,11:00) and [11:00,12:00)) do not overlap.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i TimeInterval) Contains(p TimeOfDay) bool {
	return p >= i.Start && p < i.End
}

func (i TimeInterval) DurationMinutes() int {
	return int(i.End - i.Start)
}
