package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Precedence: defaults, then the YAML
// file, then SITEPACE_* environment variables.
type Config struct {
	DBPath    string          `yaml:"db_path"`
	Log       LogConfig       `yaml:"log"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Baseline  BaselineConfig  `yaml:"baseline"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

type ForecastConfig struct {
	RollingWindowDays   int     `yaml:"rolling_window_days"`
	FallbackHorizonDays int     `yaml:"fallback_horizon_days"`
	Confidence          float64 `yaml:"confidence"`
	Persist             bool    `yaml:"persist"`
}

type BaselineConfig struct {
	MaxAttempts  int `yaml:"max_attempts"`
	MinBackoffMs int `yaml:"min_backoff_ms"`
	MaxBackoffMs int `yaml:"max_backoff_ms"`
}

type OptimizerConfig struct {
	BehindSPI      float64 `yaml:"behind_spi"`
	AheadSPI       float64 `yaml:"ahead_spi"`
	ExtendShiftSPI float64 `yaml:"extend_shift_spi"`
	MaxSuggestions int     `yaml:"max_suggestions"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dbPath := "sitepace.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".sitepace", "sitepace.db")
	}
	return Config{
		DBPath: dbPath,
		Log:    LogConfig{Level: "warn"},
		Forecast: ForecastConfig{
			RollingWindowDays:   14,
			FallbackHorizonDays: 90,
			Confidence:          0.7,
			Persist:             true,
		},
		Baseline: BaselineConfig{
			MaxAttempts:  3,
			MinBackoffMs: 50,
			MaxBackoffMs: 200,
		},
		Optimizer: OptimizerConfig{
			BehindSPI:      0.85,
			AheadSPI:       1.1,
			ExtendShiftSPI: 0.7,
			MaxSuggestions: 10,
		},
	}
}

// DefaultPath returns $SITEPACE_CONFIG or ~/.sitepace/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("SITEPACE_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sitepace", "config.yaml")
}

// LoadConfig reads the YAML file at path, if present, over the defaults
// and then applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides cfg from SITEPACE_* variables. A value that does not
// parse is an error rather than a silent fallback.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("SITEPACE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SITEPACE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SITEPACE_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SITEPACE_LOG_USE_CASES: invalid boolean %q", v)
		}
		cfg.Log.UseCases = b
	}
	if v := os.Getenv("SITEPACE_FORECAST_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SITEPACE_FORECAST_WINDOW_DAYS: invalid integer %q", v)
		}
		cfg.Forecast.RollingWindowDays = n
	}
	if v := os.Getenv("SITEPACE_FORECAST_PERSIST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SITEPACE_FORECAST_PERSIST: invalid boolean %q", v)
		}
		cfg.Forecast.Persist = b
	}
	if v := os.Getenv("SITEPACE_BASELINE_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SITEPACE_BASELINE_MAX_ATTEMPTS: invalid integer %q", v)
		}
		cfg.Baseline.MaxAttempts = n
	}
	return nil
}

// Validate rejects settings the engines cannot run with.
func (c Config) Validate() error {
	if c.Forecast.RollingWindowDays <= 0 {
		return fmt.Errorf("forecast.rolling_window_days must be > 0")
	}
	if c.Forecast.FallbackHorizonDays <= 0 {
		return fmt.Errorf("forecast.fallback_horizon_days must be > 0")
	}
	if c.Forecast.Confidence < 0 || c.Forecast.Confidence > 1 {
		return fmt.Errorf("forecast.confidence must be within [0,1]")
	}
	if c.Baseline.MaxAttempts < 1 {
		return fmt.Errorf("baseline.max_attempts must be >= 1")
	}
	if c.Baseline.MinBackoffMs < 0 || c.Baseline.MaxBackoffMs < c.Baseline.MinBackoffMs {
		return fmt.Errorf("baseline backoff bounds must satisfy 0 <= min <= max")
	}
	if c.Optimizer.MaxSuggestions < 1 {
		return fmt.Errorf("optimizer.max_suggestions must be >= 1")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// MinBackoff and MaxBackoff expose the baseline retry bounds as durations.
func (c BaselineConfig) MinBackoff() time.Duration {
	return time.Duration(c.MinBackoffMs) * time.Millisecond
}

func (c BaselineConfig) MaxBackoff() time.Duration {
	return time.Duration(c.MaxBackoffMs) * time.Millisecond
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
