package entity

import (
	"errors"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/availability"
)

func TestDoctorWindow(t *testing.T) {
	doctor := &Doctor{
		AvailabilityFromWeekDay: 1,
		AvailabilityToWeekDay:   5,
		AvailabilityFromTime:    "11:00:00",
		AvailabilityToTime:      "21:00:00",
	}

	w, err := doctor.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if w.Days.From != time.Monday || w.Days.To != time.Friday {
		t.Errorf("days = %v..%v, want Monday..Friday", w.Days.From, w.Days.To)
	}
	if w.From.String() != "11:00:00" || w.To.String() != "21:00:00" {
		t.Errorf("times = %s..%s", w.From, w.To)
	}

	tests := []struct {
		name    string
		mutate  func(*Doctor)
		wantErr error
	}{
		{"malformed from", func(d *Doctor) { d.AvailabilityFromTime = "eleven" }, availability.ErrMalformedTimeOfDay},
		{"malformed to", func(d *Doctor) { d.AvailabilityToTime = "" }, availability.ErrMalformedTimeOfDay},
		{"weekday out of range", func(d *Doctor) { d.AvailabilityToWeekDay = 7 }, availability.ErrWeekdayOutOfRange},
		{"reversed times", func(d *Doctor) { d.AvailabilityFromTime, d.AvailabilityToTime = "21:00:00", "11:00:00" }, availability.ErrInvalidTimeOrdering},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := *doctor
			tt.mutate(&d)
			if _, err := d.Window(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONScan(t *testing.T) {
	var j JSON
	if err := j.Scan([]byte(`{"new_value":{"name":"Ana"}}`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, ok := j["new_value"].(map[string]interface{}); !ok {
		t.Errorf("new_value = %#v", j["new_value"])
	}

	if err := j.Scan(nil); err != nil || j != nil {
		t.Errorf("Scan(nil) = %v, %v", j, err)
	}
	if err := j.Scan(42); err == nil {
		t.Error("expected error for unsupported source")
	}

	if v, err := (JSON{}).Value(); err != nil || v != nil {
		t.Errorf("empty Value = %v, %v; want nil", v, err)
	}
}
