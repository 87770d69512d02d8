package bootstrap

import (
	"testing"
	"time"

	"clinic-scheduler/config"

	"github.com/sirupsen/logrus"
)

func TestNewEngine(t *testing.T) {
	valid := config.ClinicConfig{
		UTCOffset: "-03:00",
		OpenTime:  "08:00",
		CloseTime: "12:00",
		SlotStep:  time.Hour,
	}

	engine, err := NewEngine(valid)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, offset := time.Date(2025, 1, 13, 0, 0, 0, 0, engine.Location()).Zone(); offset != -3*3600 {
		t.Errorf("offset = %d, want %d", offset, -3*3600)
	}

	tests := []struct {
		name   string
		mutate func(*config.ClinicConfig)
	}{
		{"bad offset", func(c *config.ClinicConfig) { c.UTCOffset = "minus three" }},
		{"bad open time", func(c *config.ClinicConfig) { c.OpenTime = "8am" }},
		{"bad close time", func(c *config.ClinicConfig) { c.CloseTime = "25:00" }},
		{"open after close", func(c *config.ClinicConfig) { c.OpenTime, c.CloseTime = "18:00", "09:00" }},
		{"zero step", func(c *config.ClinicConfig) { c.SlotStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := NewEngine(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(config.AppConfig{LogLevel: "debug"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.JSONFormatter", log.Formatter)
	}

	if _, err := NewLogger(config.AppConfig{LogLevel: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
