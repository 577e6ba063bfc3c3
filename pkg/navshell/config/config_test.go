package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	g := cfg.GestureSettings()
	assert.Equal(t, constants.DefaultEdgeWidth, g.EdgeWidth)
	assert.Equal(t, constants.DefaultSettleDuration, g.SettleDuration)
	assert.False(t, g.RTL)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[log]
level = "debug"

[gesture]
edge_width = 32.0
commit_velocity = 450.0
settle_duration = "250ms"

[preload]
idle_timeout = "1s"
bundle_url = "https://cdn.example.com/screens"
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 32.0, cfg.Gesture.EdgeWidth)
	assert.Equal(t, 450.0, cfg.Gesture.CommitVelocity)
	assert.Equal(t, 250*time.Millisecond, cfg.Gesture.SettleDuration.Duration)
	assert.Equal(t, time.Second, cfg.Preload.IdleTimeout.Duration)
	assert.Equal(t, constants.DefaultIdleQuiet, cfg.Preload.IdleQuiet.Duration, "unset keys keep defaults")
	assert.Equal(t, "https://cdn.example.com/screens", cfg.Preload.BundleURL)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse(`[gesture]
commit_distance = 500.0`)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "gesture.commit_distance", cfgErr.Field)

	_, err = Parse(`[gesture]
settle_duration = "soon"`)
	assert.Error(t, err)

	_, err = Parse(`[gesture]
rtl = true
viewport_width = 0.0`)
	assert.Error(t, err)
}

func TestParseAndLoadAgreeOnUnknownKeys(t *testing.T) {
	const text = "[preload]\nidle_timout = \"1s\"\n"

	_, parseErr := Parse(text)
	var cfgErr *ConfigError
	require.ErrorAs(t, parseErr, &cfgErr)
	assert.Equal(t, "preload.idle_timout", cfgErr.Field)

	path := filepath.Join(t.TempDir(), "navshell.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	_, loadErr := Load(path)
	require.ErrorAs(t, loadErr, &cfgErr)
	assert.Equal(t, "preload.idle_timout", cfgErr.Field)
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, Default().Gesture, cfg.Gesture)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "navshell.toml")
		require.NoError(t, os.WriteFile(path, []byte("[gesture]\nedge_widht = 10.0\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "edge_widht")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "navshell.toml")
		require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n[locale]\nlanguage = \"en\"\n"), 0o644))
		t.Setenv(constants.LogLevelEnvVar, "error")
		t.Setenv(constants.LocaleEnvVar, "es")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, "es", cfg.Locale.Language)
	})

	t.Run("dev mode forces debug logging", func(t *testing.T) {
		t.Setenv(constants.EnvironmentEnvVar, constants.Development)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}
