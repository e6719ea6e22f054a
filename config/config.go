// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Telemetry modes.
const (
	TelemetryOff  = "off"
	TelemetryOTLP = "otlp"
)

// Config holds the game's runtime configuration.
type Config struct {
	GameDir   string // "" plays the embedded world
	Seed      int64  // combat RNG seed; 0 picks one from the clock
	HistoryDB string // SQLite path for encounter history; "" disables it
	Telemetry string // TelemetryOff or TelemetryOTLP
	Plain     bool   // force the line-mode CLI
}

// Error lists every problem found in the configuration.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Load reads envFile (missing is fine) and then the SKOOLACH_* variables,
// applies defaults, and validates. Variables already set in the process
// environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	var problems []string
	cfg := &Config{
		GameDir:   os.Getenv("SKOOLACH_GAME_DIR"),
		HistoryDB: os.Getenv("SKOOLACH_HISTORY_DB"),
		Telemetry: strings.ToLower(os.Getenv("SKOOLACH_TELEMETRY")),
	}

	if v := os.Getenv("SKOOLACH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("SKOOLACH_SEED %q is not an integer", v))
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("SKOOLACH_PLAIN"); v != "" {
		plain, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("SKOOLACH_PLAIN %q is not a boolean", v))
		}
		cfg.Plain = plain
	}

	cfg.applyDefaults()
	problems = append(problems, cfg.problems()...)
	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Telemetry == "" {
		c.Telemetry = TelemetryOff
	}
}

// Validate checks a configuration after flags have been applied.
func (c *Config) Validate() error {
	if p := c.problems(); len(p) > 0 {
		return &Error{Problems: p}
	}
	return nil
}

func (c *Config) problems() []string {
	var problems []string
	switch c.Telemetry {
	case TelemetryOff, TelemetryOTLP:
	default:
		problems = append(problems, fmt.Sprintf("SKOOLACH_TELEMETRY must be %q or %q, got %q",
			TelemetryOff, TelemetryOTLP, c.Telemetry))
	}
	if c.Seed < 0 {
		problems = append(problems, "SKOOLACH_SEED must not be negative")
	}
	return problems
}
