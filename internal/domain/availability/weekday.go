package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownWeekday is returned for labels that do not name a day of the week
	ErrUnknownWeekday = errors.New("unknown weekday")
	// ErrWeekdayOutOfRange is returned for weekday numbers outside 0..6
	ErrWeekdayOutOfRange = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// ValidWeekday reports whether d is in 0..6 (Sunday=0).
func ValidWeekday(d int) bool {
	return d >= int(time.Sunday) && d <= int(time.Saturday)
}

// ParseWeekday resolves an English day name (any case) or a number 0..6.
func ParseWeekday(label string) (time.Weekday, error) {
	label = strings.TrimSpace(label)
	if n, err := strconv.Atoi(label); err == nil {
		if !ValidWeekday(n) {
			return 0, fmt.Errorf("%w: %d", ErrWeekdayOutOfRange, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), label) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, label)
}

// WeekdayRange is an inclusive, contiguous range of weekdays.
// When From > To the range wraps through Saturday back to Sunday.
type WeekdayRange struct {
	From time.Weekday
	To   time.Weekday
}

// Contains reports whether d falls in the range.
func (r WeekdayRange) Contains(d time.Weekday) bool {
	if r.From <= r.To {
		return d >= r.From && d <= r.To
	}
	return d >= r.From || d <= r.To
}

// Days lists the weekdays of the range in order, starting at From.
func (r WeekdayRange) Days() []time.Weekday {
	days := []time.Weekday{r.From}
	for d := r.From; d != r.To; {
		d = (d + 1) % 7
		days = append(days, d)
	}
	return days
}
