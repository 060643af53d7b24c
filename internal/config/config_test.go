package config

import (
	"os"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env around
	for _, key := range []string{"SHELF_SOURCE", "SHELF_REDIS_ADDR", "SHELF_ERROR_BANNER_TTL", "SHELF_CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Source != "output.json" {
		t.Errorf("Source = %q, want output.json", cfg.Source)
	}
	if cfg.BannerTTL != 3*time.Second {
		t.Errorf("BannerTTL = %v, want 3s", cfg.BannerTTL)
	}
	if cfg.ScrollOffset != 100 {
		t.Errorf("ScrollOffset = %d, want 100", cfg.ScrollOffset)
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without SHELF_REDIS_ADDR")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SHELF_SOURCE", "https://example.com/output.json")
	t.Setenv("SHELF_REDIS_ADDR", "localhost:6379")
	t.Setenv("SHELF_ALLOWED_CIDRS", "10.0.0.0/8, '192.168.1.1'")
	t.Setenv("SHELF_ERROR_BANNER_TTL", "5s")

	cfg := Load()

	if cfg.Source != "https://example.com/output.json" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if !cfg.RedisEnabled() {
		t.Error("redis should be enabled")
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[1] != "192.168.1.1" {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if cfg.BannerTTL != 5*time.Second {
		t.Errorf("BannerTTL = %v, want 5s", cfg.BannerTTL)
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{"valid integer", "42", 1, 42},
		{"invalid integer uses default", "abc", 7, 7},
		{"missing variable uses default", "", 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getenvInt("TEST_INT", tt.def); got != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{"valid duration", "5s", time.Second, 5 * time.Second},
		{"invalid duration uses default", "invalid", 10 * time.Second, 10 * time.Second},
		{"negative duration uses default", "-1s", 2 * time.Second, 2 * time.Second},
		{"missing variable uses default", "", 15 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{"true value", "true", false, true},
		{"false value", "false", true, false},
		{"invalid value uses default", "invalid", true, true},
		{"missing variable uses default", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` a , "b",, 'c' `)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}
