package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the service configuration. Values come from defaults, then an
// optional TOML file, then environment variables, then command-line flags.
type Config struct {
	Addr     string       `toml:"addr"`
	LogLevel string       `toml:"log_level"`
	Grid     GridConfig   `toml:"grid"`
	Limits   LimitsConfig `toml:"limits"`
	Gemini   GeminiConfig `toml:"gemini"`
}

// GridConfig controls puzzle generation.
type GridConfig struct {
	Size        int     `toml:"size"`
	BlackRatio  float64 `toml:"black_ratio"`
	MaxAttempts int     `toml:"max_attempts"`
}

// LimitsConfig controls request limits.
type LimitsConfig struct {
	GeneratePerMinute int      `toml:"generate_per_minute"`
	SuggestPerMinute  int      `toml:"suggest_per_minute"`
	MaxBodyBytes      int64    `toml:"max_body_bytes"`
	ReadTimeout       Duration `toml:"read_timeout"`
	WriteTimeout      Duration `toml:"write_timeout"`
}

// GeminiConfig selects the Vertex AI project used for word suggestions.
// An empty Project disables suggestions.
type GeminiConfig struct {
	Project string `toml:"project"`
	Region  string `toml:"region"`
	Model   string `toml:"model"`
}

// Duration wraps time.Duration so it can be written as "10s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Addr:     ":5001",
		LogLevel: "info",
		Grid: GridConfig{
			Size:        DefaultGridSize,
			BlackRatio:  DefaultBlackRatio,
			MaxAttempts: DefaultMaxAttempts,
		},
		Limits: LimitsConfig{
			GeneratePerMinute: 120,
			SuggestPerMinute:  5,
			MaxBodyBytes:      1 << 20,
			ReadTimeout:       Duration{10 * time.Second},
			WriteTimeout:      Duration{30 * time.Second},
		},
		Gemini: GeminiConfig{
			Region: defaultRegion,
			Model:  defaultModel,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		c.Gemini.Project = v
	}
	if v := os.Getenv("GCP_REGION"); v != "" {
		c.Gemini.Region = v
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Size < 1 {
		errs = append(errs, fmt.Errorf("grid.size must be positive, got %d", c.Grid.Size))
	}
	if c.Grid.BlackRatio < 0 || c.Grid.BlackRatio > 1 {
		errs = append(errs, fmt.Errorf("grid.black_ratio: %w", ErrInvalidRatio))
	}
	if c.Grid.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("grid.max_attempts must be at least 1, got %d", c.Grid.MaxAttempts))
	}
	if c.Limits.GeneratePerMinute < 1 || c.Limits.SuggestPerMinute < 1 {
		errs = append(errs, errors.New("limits: per-minute rates must be positive"))
	}
	if c.Limits.MaxBodyBytes < 1 {
		errs = append(errs, errors.New("limits.max_body_bytes must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
