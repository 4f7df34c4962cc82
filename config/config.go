// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultText is the payload pre-filled in the form on first load and after a reset.
const DefaultText = "https://youtu.be/xvFZjo5PgG0?si=VSdPrOL2gzcUuZM9"

// Config holds all application configuration values.
type Config struct {
	Port            int      `yaml:"port"`
	LogLevel        string   `yaml:"log_level"`
	DefaultText     string   `yaml:"default_text"`
	SessionTTL      Duration `yaml:"session_ttl"`
	CleanupInterval Duration `yaml:"cleanup_interval"`
	CookieName      string   `yaml:"cookie_name"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with sensible default values.
func Defaults() *Config {
	return &Config{
		Port:            8501,
		LogLevel:        "info",
		DefaultText:     DefaultText,
		SessionTTL:      Duration{30 * time.Minute},
		CleanupInterval: Duration{5 * time.Minute},
		CookieName:      "qrgen_session",
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working directory
// is loaded into the process environment first, then environment variables
// with the QRGEN_ prefix override any file or default values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies QRGEN_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRGEN_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("QRGEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QRGEN_DEFAULT_TEXT"); v != "" {
		cfg.DefaultText = v
	}
	if v := os.Getenv("QRGEN_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CleanupInterval = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_COOKIE_NAME"); v != "" {
		cfg.CookieName = v
	}
}

// Validate reports configuration values the service cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SessionTTL.Duration <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL.Duration)
	}
	if c.CleanupInterval.Duration <= 0 {
		return fmt.Errorf("cleanup_interval must be positive, got %s", c.CleanupInterval.Duration)
	}
	if c.CookieName == "" {
		return errors.New("cookie_name must not be empty")
	}
	if c.DefaultText == "" {
		return errors.New("default_text must not be empty")
	}
	return nil
}
