// Package apperrors defines the error taxonomy and process exit codes
// shared by the finder library and the CLI.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // a match was found
	ExitNotFound      = 1   // the range was exhausted without a match
	ExitErrorConfig   = 2   // invalid configuration
	ExitErrorGeneric  = 3   // any other failure
	ExitErrorCanceled = 130 // interrupted (SIGINT/SIGTERM)
)

// ConfigError reports an invalid configuration value. Searches fail fast
// with a ConfigError before any scanning begins; it is never retried.
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Message)
}

// NewConfigError creates a ConfigError for the given field with a formatted
// message.
func NewConfigError(field, format string, a ...any) error {
	return ConfigError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce ConfigError
	return errors.As(err, &ce)
}

// IsContextError reports whether err is a context cancellation or deadline
// error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
