package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  50 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		DialTimeout:    50 * time.Millisecond,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
		want   string
	}{
		{"valid", func(*ConnectOptions) {}, ""},
		{"no addr", func(o *ConnectOptions) { o.Addr = "" }, "Addr"},
		{"no connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, "ConnectTimeout"},
		{"no retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, "RetryInterval"},
		{"no max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, "MaxWait"},
		{"no ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, "PingTimeout"},
		{"negative warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }, "WarnThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := validateOptions(opts)
			if tt.want == "" {
				if err != nil {
					t.Errorf("validateOptions() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("validateOptions() = %v, want error mentioning %s", err, tt.want)
			}
		})
	}
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	start := time.Now()
	_, err := New(validOptions(), logger.New("error", false))
	if err == nil {
		t.Fatal("New() should fail against a closed port")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("New() took %v, should give up around ConnectTimeout", elapsed)
	}
}
