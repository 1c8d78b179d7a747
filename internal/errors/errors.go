// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrSessionNotFound indicates a requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCorpusLoad indicates the knowledge corpus could not be loaded.
	// This is fatal: the process cannot start without a corpus.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrOracleUnavailable indicates the generation oracle returned an error
	// or no provider is configured. Callers degrade to fixed fallback text.
	ErrOracleUnavailable = errors.New("generation oracle unavailable")

	// ErrExtractionParse indicates the oracle's extraction output could not
	// be parsed. Recovered locally via keyword fallback, never surfaced.
	ErrExtractionParse = errors.New("extraction output unparsable")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrBlocked indicates the security guard rejected the request.
	ErrBlocked = errors.New("request blocked by security policy")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// OracleError represents a generation oracle failure with provider context.
type OracleError struct {
	Provider  string
	Operation string // generate, extract, classify
	Err       error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle error (provider=%s, op=%s): %v", e.Provider, e.Operation, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// NewOracleError creates a new oracle error.
func NewOracleError(provider, operation string, err error) *OracleError {
	return &OracleError{
		Provider:  provider,
		Operation: operation,
		Err:       err,
	}
}
