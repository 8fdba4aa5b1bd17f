package redis

import (
	"testing"
	"time"
)

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got dial=%v read=%v", opts.DialTimeout, opts.ReadTimeout)
	}
	if opts.ClientName != clientName {
		t.Fatalf("expected client name %q, got %q", clientName, opts.ClientName)
	}

	opts = Config{Addr: "cache:6379", Timeout: time.Second}.options()
	if opts.WriteTimeout != time.Second {
		t.Fatalf("expected 1s write timeout, got %v", opts.WriteTimeout)
	}
}
