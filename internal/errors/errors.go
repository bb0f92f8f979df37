package errors

import (
	"errors"
	"fmt"
)

// ErrNoActiveFile is returned by suggestion requests issued before any
// successful analysis. The caller recovers by analyzing a file first.
var ErrNoActiveFile = errors.New("no active file: run an analysis first")

// ProviderError wraps any failure surfaced by an analysis provider:
// transport failures, authentication failures, malformed responses.
// It is always returned to the caller and never retried by the
// orchestrator.
type ProviderError struct {
	Provider   string
	Operation  string
	Underlying error
}

// NewProviderError creates a provider error with context.
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Operation:  op,
		Underlying: err,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s failed: %v", e.Provider, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// SlotAcquisitionError is returned when a concurrency slot could not
// be acquired. This only happens when the caller's context ends while
// waiting; the orchestrator instance itself remains usable.
type SlotAcquisitionError struct {
	Underlying error
}

// Error implements the error interface.
func (e *SlotAcquisitionError) Error() string {
	return fmt.Sprintf("failed to acquire analysis slot: %v", e.Underlying)
}

// Unwrap returns the underlying error.
func (e *SlotAcquisitionError) Unwrap() error {
	return e.Underlying
}

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
