// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"

	"go-chi-calculator/internal/session"
)

type Config struct {
	Addr            string
	LogLevel        zapcore.Level
	OTLPLogs        bool
	MaxSessions     int
	SessionIdleTTL  time.Duration
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration, applying defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:            ":8080",
		LogLevel:        zapcore.InfoLevel,
		MaxSessions:     session.DefaultMaxSessions,
		SessionIdleTTL:  session.DefaultIdleTTL,
		SweepInterval:   time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}

	if v, ok := os.LookupEnv("CALC_ADDR"); ok && v != "" {
		cfg.Addr = v
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v, ok := os.LookupEnv("OTEL_LOGS_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("OTEL_LOGS_ENABLED: %w", err)
		}
		cfg.OTLPLogs = enabled
	}

	if v, ok := os.LookupEnv("CALC_MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_MAX_SESSIONS: %w", err)
		}
		cfg.MaxSessions = n
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"CALC_SESSION_IDLE_TTL", &cfg.SessionIdleTTL},
		{"CALC_SWEEP_INTERVAL", &cfg.SweepInterval},
		{"CALC_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := os.LookupEnv(d.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("CALC_SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}

	return cfg, nil
}

// SessionOptions converts the session settings into store options.
func (c Config) SessionOptions() []session.Option {
	return []session.Option{
		session.WithMaxSessions(c.MaxSessions),
		session.WithIdleTTL(c.SessionIdleTTL),
	}
}
