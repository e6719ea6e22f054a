package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SKOOLACH_GAME_DIR", "SKOOLACH_SEED", "SKOOLACH_HISTORY_DB",
		"SKOOLACH_TELEMETRY", "SKOOLACH_PLAIN",
	} {
		t.Setenv(k, "")
	}
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telemetry != TelemetryOff {
		t.Errorf("Telemetry = %q, want %q", cfg.Telemetry, TelemetryOff)
	}
	if cfg.GameDir != "" || cfg.HistoryDB != "" || cfg.Seed != 0 || cfg.Plain {
		t.Errorf("unexpected non-default config %+v", cfg)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKOOLACH_GAME_DIR", "/games/skoolach")
	t.Setenv("SKOOLACH_SEED", "42")
	t.Setenv("SKOOLACH_HISTORY_DB", "/tmp/history.db")
	t.Setenv("SKOOLACH_TELEMETRY", "OTLP")
	t.Setenv("SKOOLACH_PLAIN", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		GameDir:   "/games/skoolach",
		Seed:      42,
		HistoryDB: "/tmp/history.db",
		Telemetry: TelemetryOTLP,
		Plain:     true,
	}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_EnvFileDoesNotOverrideProcess(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKOOLACH_SEED", "7")
	// godotenv only fills unset variables; blank counts as set.
	os.Unsetenv("SKOOLACH_HISTORY_DB")
	path := writeEnv(t, "SKOOLACH_SEED=99\nSKOOLACH_HISTORY_DB=from-file.db\n")
	t.Cleanup(func() { os.Unsetenv("SKOOLACH_HISTORY_DB") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7 from the process environment", cfg.Seed)
	}
	if cfg.HistoryDB != "from-file.db" {
		t.Errorf("HistoryDB = %q, want value from the env file", cfg.HistoryDB)
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should not fail, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"seed not a number", "SKOOLACH_SEED", "abc", "SKOOLACH_SEED"},
		{"negative seed", "SKOOLACH_SEED", "-1", "must not be negative"},
		{"plain not a bool", "SKOOLACH_PLAIN", "maybe", "SKOOLACH_PLAIN"},
		{"unknown telemetry", "SKOOLACH_TELEMETRY", "jaeger", "SKOOLACH_TELEMETRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if !strings.Contains(cerr.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", cerr.Error(), tt.want)
			}
		})
	}
}

func TestValidate_AfterFlags(t *testing.T) {
	cfg := &Config{Telemetry: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error")
	}
	cfg.Telemetry = TelemetryOTLP
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
