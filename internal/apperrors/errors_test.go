package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("chunk_size", "must be greater than %d", 0)
	want := `invalid configuration "chunk_size": must be greater than 0`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsConfigError(err) {
		t.Error("IsConfigError() = false for a ConfigError")
	}
}

func TestIsConfigErrorWrapped(t *testing.T) {
	err := fmt.Errorf("planning failed: %w", NewConfigError("range", "inverted"))
	if !IsConfigError(err) {
		t.Error("IsConfigError() = false for a wrapped ConfigError")
	}
	if IsConfigError(errors.New("plain")) {
		t.Error("IsConfigError() = true for an unrelated error")
	}
	if IsConfigError(nil) {
		t.Error("IsConfigError() = true for nil")
	}
}

func TestIsContextError(t *testing.T) {
	if !IsContextError(context.Canceled) {
		t.Error("IsContextError() = false for context.Canceled")
	}
	if !IsContextError(fmt.Errorf("scan: %w", context.DeadlineExceeded)) {
		t.Error("IsContextError() = false for wrapped DeadlineExceeded")
	}
	if IsContextError(errors.New("other")) {
		t.Error("IsContextError() = true for an unrelated error")
	}
}
