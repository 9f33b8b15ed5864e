// Package apperrors provides tests for the library error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "transform length must be a power of two"},
			expected: "transform length must be a power of two",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid processor count %d for length %d", 3, 8),
			expected: "invalid processor count 3 for length 8",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestTransformError(t *testing.T) {
	t.Parallel()
	cause := errors.New("redistribution failed")
	err := TransformError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("expected %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestBindingError(t *testing.T) {
	t.Parallel()
	err := NewBindingError("plan bound to a different buffer (rank %d)", 2)
	expected := "plan bound to a different buffer (rank 2)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	var bindErr BindingError
	if !errors.As(err, &bindErr) {
		t.Error("expected error to be BindingError type")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "with field",
			err:      NewValidationError("procs", "must be at least 1", 0),
			expected: "validation error for 'procs': must be at least 1",
		},
		{
			name:     "without field",
			err:      ValidationError{Message: "bad configuration"},
			expected: "validation error: bad configuration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	base := errors.New("base")
	wrapped := WrapError(base, "rank %d", 3)
	if wrapped == nil {
		t.Fatal("expected non-nil wrapped error")
	}
	if wrapped.Error() != "rank 3: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected errors.Is to traverse the wrap")
	}
	if WrapError(nil, "ignored") != nil {
		t.Error("expected nil for nil input")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	if !IsContextError(context.Canceled) {
		t.Error("expected true for context.Canceled")
	}
	if !IsContextError(fmt.Errorf("sync: %w", context.DeadlineExceeded)) {
		t.Error("expected true for wrapped DeadlineExceeded")
	}
	if IsContextError(errors.New("other")) {
		t.Error("expected false for unrelated error")
	}
}
