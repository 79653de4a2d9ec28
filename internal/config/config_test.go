package config

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"CALC_ADDR", "LOG_LEVEL", "OTEL_LOGS_ENABLED", "CALC_MAX_SESSIONS", "CALC_SESSION_IDLE_TTL", "CALC_SWEEP_INTERVAL", "CALC_SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
	if cfg.OTLPLogs {
		t.Fatal("expected OTLP logs to be disabled by default")
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("expected idle ttl 30m, got %s", cfg.SessionIdleTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected shutdown timeout 5s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CALC_ADDR", "127.0.0.1:9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_LOGS_ENABLED", "true")
	t.Setenv("CALC_MAX_SESSIONS", "3")
	t.Setenv("CALC_SESSION_IDLE_TTL", "90s")
	t.Setenv("CALC_SWEEP_INTERVAL", "10s")
	t.Setenv("CALC_SHUTDOWN_TIMEOUT", "1s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	want := Config{
		Addr:            "127.0.0.1:9090",
		LogLevel:        zapcore.DebugLevel,
		OTLPLogs:        true,
		MaxSessions:     3,
		SessionIdleTTL:  90 * time.Second,
		SweepInterval:   10 * time.Second,
		ShutdownTimeout: time.Second,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}

	if got := len(cfg.SessionOptions()); got != 2 {
		t.Fatalf("expected 2 session options, got %d", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "LOG_LEVEL", value: "loud"},
		{name: "OTEL_LOGS_ENABLED", value: "maybe"},
		{name: "CALC_MAX_SESSIONS", value: "many"},
		{name: "CALC_SESSION_IDLE_TTL", value: "forever"},
		{name: "CALC_SWEEP_INTERVAL", value: "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.name, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.name, tc.value)
			}
		})
	}
}
