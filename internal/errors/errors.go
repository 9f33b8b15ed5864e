// Package apperrors defines structured error types for the bspnum library,
// allowing for a clear distinction between error classes (configuration,
// transform, binding) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// ConfigError represents a caller configuration error, such as a transform
// length that is not a power of two, a processor grid larger than the data
// extent, or a local buffer of the wrong length. In the BSP model a malformed
// configuration invalidates the arithmetic of every rank simultaneously, so a
// ConfigError is always fatal to the whole world.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TransformError encapsulates a failure inside a distributed transform while
// preserving the original cause. It lets callers distinguish a failed
// collective operation from the configuration errors detected up front.
type TransformError struct {
	// Cause is the underlying error that triggered this transform error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e TransformError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e TransformError) Unwrap() error { return e.Cause }

// BindingError reports that an accelerated-kernel plan was invoked on a
// buffer different from the one it was constructed for. Plans capture their
// backing storage at construction time, so a rebound buffer makes the plan
// invalid; the condition receives the same fatal treatment as a ConfigError.
type BindingError struct {
	// Message is a descriptive message about the binding mismatch.
	Message string
}

// Error returns the error message for a BindingError.
func (e BindingError) Error() string { return e.Message }

// NewBindingError creates a new BindingError with a formatted message.
func NewBindingError(format string, a ...any) error {
	return BindingError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an error due to invalid input validation.
// It is used for runtime configuration validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the field that failed validation.
//   - message: A description of why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error. Ranks parked at a barrier observe a group abort as a
// context error rather than as the failing rank's own error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
