// Package config loads navshell settings from a TOML file.
//
// Every field has a default, so an empty or missing file yields a working
// configuration. Environment variables override a few fields after the
// file is read.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration written as a string ("250ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root of navshell.toml.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Locale  LocaleConfig  `toml:"locale"`
	Gesture GestureConfig `toml:"gesture"`
	Preload PreloadConfig `toml:"preload"`
	Touch   TouchConfig   `toml:"touch"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Path  string `toml:"path"`  // log file; empty logs to stderr only
}

type LocaleConfig struct {
	Language string `toml:"language"` // BCP 47 tag used for screen titles
}

type GestureConfig struct {
	EdgeWidth        float64  `toml:"edge_width"`
	MaxPull          float64  `toml:"max_pull"`
	ProgressDistance float64  `toml:"progress_distance"`
	CommitDistance   float64  `toml:"commit_distance"`
	CommitVelocity   float64  `toml:"commit_velocity"`
	SettleDuration   Duration `toml:"settle_duration"`
	RTL              bool     `toml:"rtl"`
	ViewportWidth    float64  `toml:"viewport_width"`
	IndicatorSize    int      `toml:"indicator_size"`
}

type PreloadConfig struct {
	IdleTimeout   Duration `toml:"idle_timeout"`
	IdleQuiet     Duration `toml:"idle_quiet"`
	CriticalDelay Duration `toml:"critical_delay"`
	BundleURL     string   `toml:"bundle_url"` // base URL of screen bundles; empty uses in-process loaders
}

type TouchConfig struct {
	Device string `toml:"device"` // evdev node, e.g. /dev/input/event1
	MinX   int32  `toml:"min_x"`
	MaxX   int32  `toml:"max_x"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Locale: LocaleConfig{Language: "en"},
		Gesture: GestureConfig{
			EdgeWidth:        constants.DefaultEdgeWidth,
			MaxPull:          constants.DefaultMaxPull,
			ProgressDistance: constants.DefaultProgressDistance,
			CommitDistance:   constants.DefaultCommitDistance,
			CommitVelocity:   constants.DefaultCommitVelocity,
			SettleDuration:   Duration{constants.DefaultSettleDuration},
			ViewportWidth:    1024,
			IndicatorSize:    48,
		},
		Preload: PreloadConfig{
			IdleTimeout:   Duration{constants.DefaultIdleTimeout},
			IdleQuiet:     Duration{constants.DefaultIdleQuiet},
			CriticalDelay: Duration{constants.DefaultCriticalDelay},
		},
	}
}

// ConfigError describes an invalid configuration value.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		text, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := decode(string(text), &cfg); err != nil {
				return Config{}, fmt.Errorf("%w (in %s)", err, path)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. Environment overrides are not applied.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := decode(text, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode reads text over cfg and rejects keys the Config does not define.
func decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Err: errors.New("unknown key")}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(constants.LocaleEnvVar); v != "" {
		c.Locale.Language = v
	}
	if constants.IsDevMode() {
		c.Log.Level = "debug"
	}
}

// Validate checks the gesture geometry for values that would make the
// recogniser unusable.
func (c Config) Validate() error {
	g := c.Gesture
	switch {
	case g.EdgeWidth <= 0:
		return &ConfigError{Field: "gesture.edge_width", Err: errors.New("must be positive")}
	case g.MaxPull <= 0:
		return &ConfigError{Field: "gesture.max_pull", Err: errors.New("must be positive")}
	case g.ProgressDistance <= 0:
		return &ConfigError{Field: "gesture.progress_distance", Err: errors.New("must be positive")}
	case g.CommitDistance > g.MaxPull:
		return &ConfigError{Field: "gesture.commit_distance", Err: fmt.Errorf("exceeds max_pull %.0f", g.MaxPull)}
	case g.CommitVelocity < 0:
		return &ConfigError{Field: "gesture.commit_velocity", Err: errors.New("must not be negative")}
	case g.RTL && g.ViewportWidth <= 0:
		return &ConfigError{Field: "gesture.viewport_width", Err: errors.New("required for rtl")}
	case c.Preload.IdleTimeout.Duration <= 0:
		return &ConfigError{Field: "preload.idle_timeout", Err: errors.New("must be positive")}
	}
	return nil
}

// GestureSettings converts the gesture section into recogniser settings.
func (c Config) GestureSettings() gesture.Config {
	g := c.Gesture
	return gesture.Config{
		EdgeWidth:        g.EdgeWidth,
		MaxPull:          g.MaxPull,
		ProgressDistance: g.ProgressDistance,
		CommitDistance:   g.CommitDistance,
		CommitVelocity:   g.CommitVelocity,
		SettleDuration:   g.SettleDuration.Duration,
		RTL:              g.RTL,
		ViewportWidth:    g.ViewportWidth,
	}
}
