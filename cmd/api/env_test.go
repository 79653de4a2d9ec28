package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))

	if err := loadDotEnv(); err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("CALC_ADDR=:7000\nCALC_DOTENV_ONLY=yes\n"), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	t.Setenv("DOTENV_PATH", path)
	t.Setenv("CALC_ADDR", ":9000")
	t.Setenv("CALC_DOTENV_ONLY", "")
	os.Unsetenv("CALC_DOTENV_ONLY")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("loading env file: %v", err)
	}

	if got := os.Getenv("CALC_ADDR"); got != ":9000" {
		t.Fatalf("expected process value %q to win, got %q", ":9000", got)
	}
	if got := os.Getenv("CALC_DOTENV_ONLY"); got != "yes" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
