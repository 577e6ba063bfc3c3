// Package navshell is the navigation and preload core of a mobile app
// shell. It owns the screen history, decides which screen modules to
// fetch ahead of time, recognises the edge-swipe back gesture and picks
// the transition animation for every screen change.
//
// Rendering is left to the host: a Shell reports what to show through
// View and TakeTransition, and the host draws it.
package navshell

import (
	"log/slog"

	"github.com/BrandonKowalski/navshell/pkg/navshell/config"
	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
)

// Init configures logging from cfg. Call it once before New; it is safe
// to skip, in which case logs go to stderr at info level.
func Init(cfg config.Config) {
	if cfg.Log.Path != "" {
		internal.SetLogPath(cfg.Log.Path)
	}

	internal.SetRawLogLevel(cfg.Log.Level)

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// Shutdown flushes and closes the log file.
func Shutdown() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
