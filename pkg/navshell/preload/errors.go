package preload

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
)

// Sentinel errors for common conditions.
var (
	// ErrNoLoader indicates a screen has no entry in the loader table.
	ErrNoLoader = errors.New("no loader registered")

	// ErrSchedulerClosed is returned by tasks scheduled after Close.
	ErrSchedulerClosed = errors.New("scheduler closed")
)

// LoadError records a failed screen load. The failure stays on the cache
// entry until Forget is called; the cache never retries by itself.
type LoadError struct {
	Screen screens.ID
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("preload: load %s: %v", e.Screen, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError checks if an error is a screen load failure.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
