package availability

import (
	"errors"
	"testing"
	"time"
)

// Week of 2025-01-12 (Sunday) .. 2025-01-18 (Saturday).
func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

var (
	sunday    = day(12)
	monday    = day(13)
	wednesday = day(15)
	friday    = day(17)
	saturday  = day(18)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEngine() *Engine {
	return NewEngine(-3*time.Hour, WithClock(fixedClock(time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC))))
}

func mustWindow(t *testing.T, from, to int, fromTime, toTime string) Window {
	t.Helper()
	w, err := NewWindow(from, to, MustParseTimeOfDay(fromTime), MustParseTimeOfDay(toTime))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

// local returns the clinic wall-clock time whose UTC equivalent is utc, for a -03:00 clinic.
func local(utc string) TimeOfDay {
	u := MustParseTimeOfDay(utc)
	return timeOfDayOf(time.Date(2025, 1, 1, u.Hour, u.Minute, 0, 0, time.UTC).Add(-3 * time.Hour))
}

func TestIsWithinAvailability_Scenarios(t *testing.T) {
	e := newTestEngine()
	weekdays := mustWindow(t, 1, 5, "08:00:00", "18:00:00")
	wrapping := mustWindow(t, 5, 1, "08:00:00", "18:00:00")

	tests := []struct {
		name   string
		window Window
		date   time.Time
		time   TimeOfDay
		want   bool
	}{
		{"A wednesday at 10:00 UTC", weekdays, wednesday, local("10:00"), true},
		{"B saturday is outside the range", weekdays, saturday, local("10:00"), false},
		{"B saturday at the start boundary", weekdays, saturday, local("08:00"), false},
		{"C monday one minute early", weekdays, monday, local("07:59"), false},
		{"C monday at the start boundary", weekdays, monday, local("08:00"), true},
		{"monday at the end boundary", weekdays, monday, local("18:00"), true},
		{"monday one minute late", weekdays, monday, local("18:01"), false},
		{"D wrapped range includes sunday", wrapping, sunday, local("10:00"), true},
		{"D wrapped range includes friday", wrapping, friday, local("10:00"), true},
		{"D wrapped range excludes wednesday", wrapping, wednesday, local("10:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IsWithinAvailability(tt.window, tt.date, tt.time); got != tt.want {
				t.Errorf("IsWithinAvailability(%s %s) = %v, want %v", tt.date.Weekday(), tt.time.HHMM(), got, tt.want)
			}
		})
	}
}

func TestIsWithinAvailability_BoundariesForAllOrderedPairs(t *testing.T) {
	e := NewEngine(0)
	for from := 0; from < 24*60; from += 97 {
		for to := from + 1; to < 24*60; to += 131 {
			w := Window{
				Days: WeekdayRange{From: time.Sunday, To: time.Saturday},
				From: TimeOfDay{Hour: from / 60, Minute: from % 60},
				To:   TimeOfDay{Hour: to / 60, Minute: to % 60},
			}
			at := func(m int) TimeOfDay { return TimeOfDay{Hour: m / 60, Minute: m % 60} }

			if !e.IsWithinAvailability(w, wednesday, at(from)) {
				t.Fatalf("from boundary %s not admitted for %s-%s", at(from).HHMM(), w.From.HHMM(), w.To.HHMM())
			}
			if !e.IsWithinAvailability(w, wednesday, at(to)) {
				t.Fatalf("to boundary %s not admitted for %s-%s", at(to).HHMM(), w.From.HHMM(), w.To.HHMM())
			}
			if from > 0 && e.IsWithinAvailability(w, wednesday, at(from-1)) {
				t.Fatalf("%s admitted before %s", at(from-1).HHMM(), w.From.HHMM())
			}
			if to < 24*60-1 && e.IsWithinAvailability(w, wednesday, at(to+1)) {
				t.Fatalf("%s admitted after %s", at(to+1).HHMM(), w.To.HHMM())
			}
		}
	}
}

func TestIsWithinAvailability_IgnoresSeconds(t *testing.T) {
	e := NewEngine(0)
	w := mustWindow(t, 0, 6, "08:00:45", "09:00:30")
	if !e.IsWithinAvailability(w, monday, TimeOfDay{Hour: 8, Minute: 0, Second: 10}) {
		t.Error("08:00:10 should match a window starting 08:00:45 at minute precision")
	}
	if !e.IsWithinAvailability(w, monday, TimeOfDay{Hour: 9, Minute: 0, Second: 59}) {
		t.Error("09:00:59 should match a window ending 09:00:30 at minute precision")
	}
}

func TestWeekdayRange_Contains(t *testing.T) {
	for from := time.Sunday; from <= time.Saturday; from++ {
		for to := time.Sunday; to <= time.Saturday; to++ {
			r := WeekdayRange{From: from, To: to}

			expected := map[time.Weekday]bool{}
			for d := from; ; d = (d + 1) % 7 {
				expected[d] = true
				if d == to {
					break
				}
			}

			wantLen := (int(to)-int(from)+7)%7 + 1
			if len(expected) != wantLen {
				t.Fatalf("range %d-%d: expected %d days, built %d", from, to, wantLen, len(expected))
			}
			for d := time.Sunday; d <= time.Saturday; d++ {
				if got := r.Contains(d); got != expected[d] {
					t.Errorf("range %s-%s Contains(%s) = %v, want %v", from, to, d, got, expected[d])
				}
			}
			if days := r.Days(); len(days) != wantLen {
				t.Errorf("range %s-%s Days() has %d entries, want %d", from, to, len(days), wantLen)
			}
		}
	}
}

func TestWeekdayRange_SingleDay(t *testing.T) {
	r := WeekdayRange{From: time.Thursday, To: time.Thursday}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if got := r.Contains(d); got != (d == time.Thursday) {
			t.Errorf("Contains(%s) = %v", d, got)
		}
	}
}

func TestWeekdayRange_WrapDays(t *testing.T) {
	got := WeekdayRange{From: time.Friday, To: time.Monday}.Days()
	want := []time.Weekday{time.Friday, time.Saturday, time.Sunday, time.Monday}
	if len(got) != len(want) {
		t.Fatalf("Days() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Days()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidateTimeOrdering(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"09:00:00", "09:00:00", false},
		{"08:00", "09:00", true},
		{"18:00:00", "08:00:00", false},
		{"08:00:00", "08:00:01", true},
		{"bad", "09:00", false},
		{"08:00", "", false},
	}
	for _, tt := range tests {
		if got := ValidateTimeOrdering(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidateTimeOrdering(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidateWeekDayOrdering(t *testing.T) {
	if !ValidateWeekDayOrdering(5, 1) {
		t.Error("wrapped range 5-1 should be valid")
	}
	if !ValidateWeekDayOrdering(3, 3) {
		t.Error("single day range should be valid")
	}
	if ValidateWeekDayOrdering(-1, 3) || ValidateWeekDayOrdering(0, 7) {
		t.Error("weekdays outside 0..6 should be rejected")
	}
}

func TestNewWindow_Errors(t *testing.T) {
	if _, err := NewWindow(0, 7, TimeOfDay{Hour: 8}, TimeOfDay{Hour: 9}); !errors.Is(err, ErrWeekdayOutOfRange) {
		t.Errorf("expected ErrWeekdayOutOfRange, got %v", err)
	}
	if _, err := NewWindow(1, 5, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 9}); !errors.Is(err, ErrInvalidTimeOrdering) {
		t.Errorf("expected ErrInvalidTimeOrdering, got %v", err)
	}
}

func TestNormalizeToUTC(t *testing.T) {
	tests := []struct {
		offset time.Duration
		local  string
		want   string
	}{
		{-3 * time.Hour, "08:00", "11:00:00"},
		{-3 * time.Hour, "22:00:00", "01:00:00"},
		{5*time.Hour + 30*time.Minute, "09:30:15", "04:00:15"},
		{0, "13:45:00", "13:45:00"},
	}
	for _, tt := range tests {
		e := NewEngine(tt.offset)
		got, err := e.NormalizeToUTC(tt.local, wednesday)
		if err != nil {
			t.Fatalf("NormalizeToUTC(%q): %v", tt.local, err)
		}
		if got.String() != tt.want {
			t.Errorf("NormalizeToUTC(%q) at %v = %s, want %s", tt.local, tt.offset, got, tt.want)
		}
	}
}

func TestNormalizeToUTC_Malformed(t *testing.T) {
	e := newTestEngine()
	for _, in := range []string{"", "9h", "25:00", "12:60", "aa:bb:cc"} {
		if _, err := e.NormalizeToUTC(in, wednesday); !errors.Is(err, ErrMalformedTimeOfDay) {
			t.Errorf("NormalizeToUTC(%q) error = %v, want ErrMalformedTimeOfDay", in, err)
		}
	}
}

func TestNormalizeToUTC_RoundTrip(t *testing.T) {
	offsets := []time.Duration{-11 * time.Hour, -3 * time.Hour, 0, 5*time.Hour + 30*time.Minute, 14 * time.Hour}
	clock := fixedClock(time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC))

	for _, offset := range offsets {
		e := NewEngine(offset, WithClock(clock))
		for m := 0; m < 24*60; m += 17 {
			in := TimeOfDay{Hour: m / 60, Minute: m % 60, Second: m % 60}
			utc, err := e.NormalizeToUTC(in.String(), wednesday)
			if err != nil {
				t.Fatalf("NormalizeToUTC(%s): %v", in, err)
			}
			if back := e.ToLocal(utc, wednesday); back != in {
				t.Errorf("offset %v: ToLocal(NormalizeToUTC(%s)) = %s", offset, in, back)
			}

			w := Window{Days: WeekdayRange{From: time.Monday, To: time.Friday}, From: utc, To: utc}
			if got := e.ToDisplayWindow(w).From.Time; got != in {
				t.Errorf("offset %v: display of normalized %s = %s", offset, in, got)
			}
		}
	}
}

func TestToDisplayWindow(t *testing.T) {
	e := newTestEngine()
	w := mustWindow(t, 1, 5, "01:00:00", "18:30:00")

	got := e.ToDisplayWindow(w)

	if got.From.Weekday != time.Sunday || got.From.Time.HHMM() != "22:00" {
		t.Errorf("From = %s %s, want Sunday 22:00", got.From.Weekday, got.From.Time.HHMM())
	}
	if got.To.Weekday != time.Friday || got.To.Time.HHMM() != "15:30" {
		t.Errorf("To = %s %s, want Friday 15:30", got.To.Weekday, got.To.Time.HHMM())
	}
}

func TestToDisplayWindow_ShiftsWeekdayAcrossMidnight(t *testing.T) {
	e := newTestEngine()
	// Mon..Fri 21:00..23:00 at -03:00 is stored as 00:00..02:00 UTC.
	w := mustWindow(t, 1, 5, "00:00:00", "02:00:00")

	got := e.ToDisplayWindow(w)
	if got.From.Weekday != time.Sunday || got.From.Time.HHMM() != "21:00" {
		t.Errorf("From = %s %s, want Sunday 21:00", got.From.Weekday, got.From.Time.HHMM())
	}
	if got.To.Weekday != time.Thursday || got.To.Time.HHMM() != "23:00" {
		t.Errorf("To = %s %s, want Thursday 23:00", got.To.Weekday, got.To.Time.HHMM())
	}

	// Bookable days still follow the stored weekday range.
	at := MustParseTimeOfDay("22:00")
	if !e.IsWithinAvailability(w, friday, at) {
		t.Error("Friday 22:00 local should be bookable")
	}
	if e.IsWithinAvailability(w, sunday, at) {
		t.Error("Sunday 22:00 local should not be bookable")
	}
}

func TestBookableSlots(t *testing.T) {
	e := newTestEngine()
	w := mustWindow(t, 1, 5, "08:00:00", "18:00:00")

	slots := e.BookableSlots(w, wednesday)
	if len(slots) != 21 {
		t.Fatalf("expected 21 slots, got %d", len(slots))
	}
	if slots[0].HHMM() != "05:00" || slots[len(slots)-1].HHMM() != "15:00" {
		t.Errorf("slots span %s-%s, want 05:00-15:00", slots[0].HHMM(), slots[len(slots)-1].HHMM())
	}

	if got := e.BookableSlots(w, saturday); len(got) != 0 {
		t.Errorf("expected no slots on saturday, got %d", len(got))
	}
}

func TestDefaultBusinessHours(t *testing.T) {
	hours := DefaultBusinessHours()
	if len(hours) != 35 {
		t.Fatalf("expected 35 entries, got %d", len(hours))
	}
	if hours[0].HHMM() != "05:00" || hours[34].HHMM() != "22:00" {
		t.Errorf("grid spans %s-%s, want 05:00-22:00", hours[0].HHMM(), hours[34].HHMM())
	}
}

func TestIsBookableDate(t *testing.T) {
	e := newTestEngine()
	if !e.IsBookableDate(wednesday) {
		t.Error("today should be bookable")
	}
	if e.IsBookableDate(day(14)) {
		t.Error("yesterday should not be bookable")
	}
	if !e.IsBookableDate(day(16)) {
		t.Error("tomorrow should be bookable")
	}

	// 02:00 UTC on the 15th is still the 14th on a -03:00 wall clock.
	late := NewEngine(-3*time.Hour, WithClock(fixedClock(time.Date(2025, time.January, 15, 2, 0, 0, 0, time.UTC))))
	if !late.IsBookableDate(day(14)) {
		t.Error("clinic-local today should be bookable")
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"-03:00", -3 * time.Hour},
		{"+05:30", 5*time.Hour + 30*time.Minute},
		{"Z", 0},
		{"+00:00", 0},
	}
	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if err != nil {
			t.Fatalf("ParseOffset(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOffset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseOffset("three hours"); err == nil {
		t.Error("expected error for malformed offset")
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"monday", time.Monday},
		{"SUNDAY", time.Sunday},
		{" Friday ", time.Friday},
		{"6", time.Saturday},
		{"0", time.Sunday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseWeekday(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseWeekday("funday"); !errors.Is(err, ErrUnknownWeekday) {
		t.Errorf("expected ErrUnknownWeekday, got %v", err)
	}
	if _, err := ParseWeekday("7"); !errors.Is(err, ErrWeekdayOutOfRange) {
		t.Errorf("expected ErrWeekdayOutOfRange, got %v", err)
	}
}
