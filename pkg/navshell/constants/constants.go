// Package constants defines shared constants, environment variable names and
// default tuning values used throughout navshell.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by navshell.
const (
	EnvironmentEnvVar = "NAVSHELL_ENV"       // Set to DEV for verbose internal logging
	LogLevelEnvVar    = "NAVSHELL_LOG_LEVEL" // Overrides [log].level from the config file
	ConfigPathEnvVar  = "NAVSHELL_CONFIG"    // Path to a navshell.toml file
	LocaleEnvVar      = "NAVSHELL_LOCALE"    // Overrides [locale].language
)

// IsDevMode returns true if running in development mode (NAVSHELL_ENV=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Edge-swipe defaults, in logical pixels and pixels per second.
const (
	DefaultEdgeWidth        = 24.0
	DefaultMaxPull          = 160.0
	DefaultProgressDistance = 120.0
	DefaultCommitDistance   = 80.0
	DefaultCommitVelocity   = 300.0
	DefaultSettleDuration   = 180 * time.Millisecond
	DefaultVelocityWindow   = 100 * time.Millisecond // A finger resting longer than this lifts with zero velocity
)

// Preload defaults.
const (
	DefaultIdleTimeout   = 2 * time.Second        // Upper bound before idle work runs anyway
	DefaultIdleQuiet     = 50 * time.Millisecond  // Host inactivity that counts as idle
	DefaultCriticalDelay = 300 * time.Millisecond // Delay before the startup preload pass
)

// Transition timing shared by every variant family.
const (
	DefaultTransitionDuration = 280 * time.Millisecond
)

// DefaultTransitionCurve is the cubic-bezier control points of the transition easing.
var DefaultTransitionCurve = [4]float64{0.32, 0.72, 0, 1}
