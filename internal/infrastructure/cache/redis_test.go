package cache

import (
	"testing"

	"clinic-scheduler/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 2, PoolSize: 25})

	if opts.Addr != "cache:6380" {
		t.Errorf("Addr = %q", opts.Addr)
	}
	if opts.Password != "pw" || opts.DB != 2 || opts.PoolSize != 25 {
		t.Errorf("unexpected options: %+v", opts)
	}

	if got := Options(config.RedisConfig{Host: "cache", Port: "6379"}).PoolSize; got != 0 {
		t.Errorf("PoolSize = %d, want client default 0", got)
	}
}
