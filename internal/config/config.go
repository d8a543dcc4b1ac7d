// Package config loads ls-devas settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/logging"
)

// Environment variables that override the file.
const (
	EnvLat      = "LSDEVAS_LAT"
	EnvLon      = "LSDEVAS_LON"
	EnvTimezone = "LSDEVAS_TZ"
	EnvLogLevel = "LSDEVAS_LOG_LEVEL"
	EnvZodiac   = "LSDEVAS_ZODIAC"
)

// Zodiac names accepted by Config.Zodiac.
const (
	ZodiacSidereal = "sidereal"
	ZodiacTropical = "tropical"
)

// Config is the full settings file.
type Config struct {
	Observer ObserverConfig `yaml:"observer"`
	Timezone string         `yaml:"timezone,omitempty"` // IANA name applied to birth input
	LogLevel string         `yaml:"log_level"`
	Zodiac   string         `yaml:"zodiac"`
	Watch    WatchConfig    `yaml:"watch"`
	UI       UIConfig       `yaml:"ui"`
}

// ObserverConfig is the default site. Lat and Lon are both set or both unset.
type ObserverConfig struct {
	Name string   `yaml:"name,omitempty"`
	Lat  *float64 `yaml:"lat,omitempty"`
	Lon  *float64 `yaml:"lon,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Interval  string `yaml:"interval"`
	MaxEvents int    `yaml:"max_events"`
}

// UIConfig controls the TUI.
type UIConfig struct {
	Step string `yaml:"step"` // initial time step for the arrow keys
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Zodiac:   ZodiacSidereal,
		Watch: WatchConfig{
			Interval:  "1m",
			MaxEvents: 50,
		},
		UI: UIConfig{
			Step: "1h",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".ls-devas", "config.yaml")
	}
	return filepath.Join(dir, "ls-devas", "config.yaml")
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvLat); v != "" {
		lat, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLat, err)
		}
		c.Observer.Lat = &lat
	}
	if v := os.Getenv(EnvLon); v != "" {
		lon, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLon, err)
		}
		c.Observer.Lon = &lon
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvZodiac); v != "" {
		c.Zodiac = strings.ToLower(v)
	}
	return nil
}

// Validate checks every field that has a fixed domain.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.GetObserver(); err != nil {
		errs = append(errs, err)
	}
	switch c.Zodiac {
	case ZodiacSidereal, ZodiacTropical:
	default:
		errs = append(errs, fmt.Errorf("zodiac must be %q or %q, got %q", ZodiacSidereal, ZodiacTropical, c.Zodiac))
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
		}
	}
	if d, err := time.ParseDuration(c.Watch.Interval); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be a positive duration, got %q", c.Watch.Interval))
	}
	if d, err := time.ParseDuration(c.UI.Step); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("ui.step must be a positive duration, got %q", c.UI.Step))
	}
	if c.Watch.MaxEvents < 0 {
		errs = append(errs, fmt.Errorf("watch.max_events must not be negative, got %d", c.Watch.MaxEvents))
	}
	return errors.Join(errs...)
}

// GetObserver returns the configured site, or nil when none is set.
func (c *Config) GetObserver() (*astro.Observer, error) {
	o := c.Observer
	if o.Lat == nil && o.Lon == nil {
		return nil, nil
	}
	if o.Lat == nil || o.Lon == nil {
		return nil, errors.New("observer needs both lat and lon")
	}
	obs := &astro.Observer{LatDeg: *o.Lat, LonDeg: *o.Lon, Name: o.Name}
	if err := obs.Validate(); err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	return obs, nil
}

// GetWatchInterval returns the watch interval, one minute if unparseable.
func (c *Config) GetWatchInterval() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Interval); err == nil && d > 0 {
		return d
	}
	return time.Minute
}

// GetUIStep returns the TUI time step, one hour if unparseable.
func (c *Config) GetUIStep() time.Duration {
	if d, err := time.ParseDuration(c.UI.Step); err == nil && d > 0 {
		return d
	}
	return time.Hour
}

// GetLogLevel returns the parsed log level.
func (c *Config) GetLogLevel() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Tropical reports whether tables should show tropical longitudes.
func (c *Config) Tropical() bool {
	return c.Zodiac == ZodiacTropical
}
