// Package config holds the console's runtime settings.
package config

import (
	"fmt"
	"time"

	"ecosoap/internal/selector"

	"github.com/BurntSushi/toml"
)

// Config contains configurable parameters for the partner console.
// Use Default() to get sensible defaults, then override as needed.
type Config struct {
	// Data
	FixturePath string   `toml:"fixture_path"` // TOML seed data loaded into the in-memory store
	DBThreads   int      `toml:"db_threads"`   // DuckDB threads (default: 0 = DuckDB default)
	DBTimeout   Duration `toml:"db_timeout"`   // Query timeout (default: 5s)

	// Logging
	LogPath  string `toml:"log_path"`  // Log file; the terminal belongs to the TUI (default: "logs/ecosoap.log")
	LogLevel string `toml:"log_level"` // debug, info, warn, error (default: "info")

	// Property selector
	SelectorRowHeight     int      `toml:"selector_row_height"`     // Lines per row (default: 1)
	SelectorCollapseDelay Duration `toml:"selector_collapse_delay"` // Auto-collapse after becoming visible (default: 1s)

	// Presentation
	AnimationFPS int `toml:"animation_fps"` // Spring animation frame rate (default: 60)
	ChartMonths  int `toml:"chart_months"`  // Months shown in the pickup chart (default: 12)
}

// Duration decodes TOML strings such as "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		FixturePath: "testdata/fixture.toml",
		DBThreads:   0,
		DBTimeout:   Duration{5 * time.Second},

		LogPath:  "logs/ecosoap.log",
		LogLevel: "info",

		SelectorRowHeight:     1,
		SelectorCollapseDelay: Duration{time.Second},

		AnimationFPS: 60,
		ChartMonths:  12,
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithFixturePath returns a copy of the config with a different seed file.
func (c Config) WithFixturePath(path string) Config {
	c.FixturePath = path
	return c
}

// WithLogLevel returns a copy of the config with a different log level.
func (c Config) WithLogLevel(level string) Config {
	c.LogLevel = level
	return c
}

// WithCollapseDelay returns a copy of the config with a different auto-collapse delay.
func (c Config) WithCollapseDelay(d time.Duration) Config {
	c.SelectorCollapseDelay = Duration{d}
	return c
}

// WithRowHeight returns a copy of the config with a different selector row height.
func (c Config) WithRowHeight(h int) Config {
	c.SelectorRowHeight = h
	return c
}

// Selector returns the property selector settings.
func (c Config) Selector() selector.Config {
	return selector.Config{
		RowHeight:     c.SelectorRowHeight,
		CollapseDelay: c.SelectorCollapseDelay.Duration,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.FixturePath == "" {
		return &ConfigError{Field: "FixturePath", Message: "must not be empty"}
	}
	if c.DBThreads < 0 {
		return &ConfigError{Field: "DBThreads", Message: "must not be negative"}
	}
	if c.DBTimeout.Duration < 0 {
		return &ConfigError{Field: "DBTimeout", Message: "must not be negative"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "LogLevel", Message: "must be one of debug, info, warn, error"}
	}
	if c.SelectorRowHeight <= 0 {
		return &ConfigError{Field: "SelectorRowHeight", Message: "must be positive"}
	}
	if c.SelectorCollapseDelay.Duration <= 0 {
		return &ConfigError{Field: "SelectorCollapseDelay", Message: "must be positive"}
	}
	if c.AnimationFPS <= 0 {
		return &ConfigError{Field: "AnimationFPS", Message: "must be positive"}
	}
	if c.ChartMonths <= 0 {
		return &ConfigError{Field: "ChartMonths", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
