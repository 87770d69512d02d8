// Package availability turns a doctor's weekly recurring availability window
// into bookable slots and validates appointment times against it.
//
// A Window stores a weekday range and a time-of-day range. Times are kept
// normalized to UTC; conversion to and from the clinic's wall clock uses a
// single fixed offset, with no daylight-saving rules.
package availability

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOrdering is returned when a window's start is not strictly before its end
var ErrInvalidTimeOrdering = errors.New("availability start time must be before end time")

// Window is a doctor's recurring weekly availability. From and To are UTC.
type Window struct {
	Days WeekdayRange
	From TimeOfDay
	To   TimeOfDay
}

// NewWindow builds a Window from stored doctor fields.
func NewWindow(fromWeekDay, toWeekDay int, from, to TimeOfDay) (Window, error) {
	if !ValidateWeekDayOrdering(fromWeekDay, toWeekDay) {
		return Window{}, fmt.Errorf("%w: from=%d to=%d", ErrWeekdayOutOfRange, fromWeekDay, toWeekDay)
	}
	if !from.Before(to) {
		return Window{}, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeOrdering, from, to)
	}
	return Window{
		Days: WeekdayRange{From: time.Weekday(fromWeekDay), To: time.Weekday(toWeekDay)},
		From: from,
		To:   to,
	}, nil
}

// ContainsMinute reports whether minute-of-day m is inside [From, To], both inclusive.
func (w Window) ContainsMinute(m int) bool {
	return w.From.Minutes() <= m && m <= w.To.Minutes()
}

// DisplayPoint is one end of a window expressed on the display wall clock.
type DisplayPoint struct {
	Weekday time.Weekday
	Time    TimeOfDay
}

// DisplayWindow is a window converted to the display zone.
// From is not guaranteed to be before To.
type DisplayWindow struct {
	From DisplayPoint
	To   DisplayPoint
}

// ValidateWeekDayOrdering reports whether both weekdays are in 0..6.
// Any order is accepted because ranges wrap around the week.
func ValidateWeekDayOrdering(fromWeekDay, toWeekDay int) bool {
	return ValidWeekday(fromWeekDay) && ValidWeekday(toWeekDay)
}

// ValidateTimeOrdering reports whether from is strictly before to as same-day times.
// Malformed values never validate.
func ValidateTimeOrdering(from, to string) bool {
	f, err := ParseTimeOfDay(from)
	if err != nil {
		return false
	}
	t, err := ParseTimeOfDay(to)
	if err != nil {
		return false
	}
	return f.Before(t)
}

// ParseOffset parses a fixed UTC offset such as "-03:00", "+05:30" or "Z".
func ParseOffset(value string) (time.Duration, error) {
	t, err := time.Parse("Z07:00", value)
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", value, err)
	}
	_, seconds := t.Zone()
	return time.Duration(seconds) * time.Second, nil
}

// FixedZone returns a location with a constant offset from UTC.
func FixedZone(offset time.Duration) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	sign := '+'
	abs := offset
	if offset < 0 {
		sign = '-'
		abs = -offset
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, int(abs.Hours()), int(abs.Minutes())%60)
	return time.FixedZone(name, int(offset.Seconds()))
}

// Engine evaluates windows against the clinic wall clock.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	loc   *time.Location
	now   func() time.Time
	hours []TimeOfDay
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for "today" and the display anchor week.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithBusinessHours sets the grid bookable slots are drawn from.
func WithBusinessHours(open, closing TimeOfDay, step time.Duration) Option {
	return func(e *Engine) {
		e.hours = BusinessHours(open, closing, step)
	}
}

// DefaultBusinessHours is 05:00 through 22:00 every 30 minutes.
func DefaultBusinessHours() []TimeOfDay {
	return BusinessHours(TimeOfDay{Hour: 5}, TimeOfDay{Hour: 22}, 30*time.Minute)
}

// NewEngine creates an Engine for a clinic whose wall clock is offset from UTC.
func NewEngine(offset time.Duration, opts ...Option) *Engine {
	e := &Engine{
		loc:   FixedZone(offset),
		now:   time.Now,
		hours: DefaultBusinessHours(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the clinic's fixed zone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Today returns midnight of the current clinic calendar day.
func (e *Engine) Today() time.Time {
	y, m, d := e.now().In(e.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

// NormalizeToUTC converts a clinic-local time of day to UTC.
// referenceDate only supplies the calendar day; with a fixed offset the result does not depend on it.
func (e *Engine) NormalizeToUTC(localTimeOfDay string, referenceDate time.Time) (TimeOfDay, error) {
	local, err := ParseTimeOfDay(localTimeOfDay)
	if err != nil {
		return TimeOfDay{}, err
	}
	return timeOfDayOf(local.On(referenceDate, e.loc).UTC()), nil
}

// ToLocal converts a stored UTC time of day to the clinic wall clock.
func (e *Engine) ToLocal(utc TimeOfDay, referenceDate time.Time) TimeOfDay {
	return timeOfDayOf(utc.On(referenceDate, time.UTC).In(e.loc))
}

// ToDisplayWindow anchors both ends of w on the current UTC week (Sunday first)
// and converts them to the clinic wall clock. When a bound's UTC time falls on the
// other side of midnight from its local time, the displayed weekday moves with it,
// so the result is a pair of wall-clock instants and not the list of bookable days.
// Bookability always follows w.Days as checked by IsWithinAvailability.
func (e *Engine) ToDisplayWindow(w Window) DisplayWindow {
	anchor := startOfWeek(e.now().UTC())
	point := func(d time.Weekday, t TimeOfDay) DisplayPoint {
		local := anchor.AddDate(0, 0, int(d)).Add(t.Duration()).In(e.loc)
		return DisplayPoint{Weekday: local.Weekday(), Time: timeOfDayOf(local)}
	}
	return DisplayWindow{
		From: point(w.Days.From, w.From),
		To:   point(w.Days.To, w.To),
	}
}

// IsWithinAvailability reports whether a candidate appointment, given as a clinic
// calendar date and wall-clock time, falls inside w. The weekday is taken from the
// clinic calendar date; the minute of day is compared in UTC against the stored bounds.
func (e *Engine) IsWithinAvailability(w Window, candidateLocalDate time.Time, candidateLocalTime TimeOfDay) bool {
	local := TimeOfDay{Hour: candidateLocalTime.Hour, Minute: candidateLocalTime.Minute}.On(candidateLocalDate, e.loc)
	if !w.Days.Contains(local.Weekday()) {
		return false
	}
	return w.ContainsMinute(timeOfDayOf(local.UTC()).Minutes())
}

// AppointmentInstant returns the absolute instant of a clinic calendar date and wall-clock time.
func (e *Engine) AppointmentInstant(localDate time.Time, localTime TimeOfDay) time.Time {
	return localTime.On(localDate, e.loc)
}

// IsBookableDate reports whether the clinic calendar date is today or later.
func (e *Engine) IsBookableDate(localDate time.Time) bool {
	y, m, d := localDate.Date()
	return !time.Date(y, m, d, 0, 0, 0, 0, e.loc).Before(e.Today())
}

// BookableSlots lists the business-hours times on localDate that w admits, as clinic wall-clock times.
func (e *Engine) BookableSlots(w Window, localDate time.Time) []TimeOfDay {
	slots := make([]TimeOfDay, 0, len(e.hours))
	for _, t := range e.hours {
		if e.IsWithinAvailability(w, localDate, t) {
			slots = append(slots, t)
		}
	}
	return slots
}

func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
