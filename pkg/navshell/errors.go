package navshell

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrClosed indicates the shell has been closed and no longer navigates
	// or preloads.
	ErrClosed = errors.New("shell closed")

	// ErrInvalidStart indicates Options.Start is not a defined screen.
	ErrInvalidStart = errors.New("start screen is not defined")
)

// InfrastructureError represents a failure wiring the shell itself (an
// incomplete loader table, unusable configuration). These errors surface
// from New and are not recoverable at the screen level.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "validate_loaders", "config")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navshell: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("navshell: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
