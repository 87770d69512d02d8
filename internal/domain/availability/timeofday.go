package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTimeOfDay is returned when a time-of-day string is not HH:MM or HH:MM:SS
var ErrMalformedTimeOfDay = errors.New("malformed time of day, use HH:MM or HH:MM:SS")

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// TimeOfDay is a wall-clock time without a date or zone
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses HH:MM or HH:MM:SS. Malformed input is an error, never a silent 00:00.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return timeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTimeOfDay, value)
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on malformed input.
// Intended for constants and tests.
func MustParseTimeOfDay(value string) TimeOfDay {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

func timeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Minutes returns minutes since midnight; seconds are dropped.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is strictly earlier than o on the same day.
func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.seconds() < o.seconds()
}

// Duration returns the offset of t from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.seconds()) * time.Second
}

// On places t on the calendar date of day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, loc)
}

// String formats t as HH:MM:SS, the persisted form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// HHMM formats t as HH:MM for display.
func (t TimeOfDay) HHMM() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// BusinessHours returns the grid of times from open to closing (inclusive) every step.
func BusinessHours(open, closing TimeOfDay, step time.Duration) []TimeOfDay {
	if step <= 0 || closing.Before(open) {
		return nil
	}
	var grid []TimeOfDay
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := base.Add(closing.Duration())
	for t := base.Add(open.Duration()); !t.After(end); t = t.Add(step) {
		grid = append(grid, timeOfDayOf(t))
	}
	return grid
}
