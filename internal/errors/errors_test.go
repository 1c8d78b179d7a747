package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	wrapped := NewOracleError("gemini", "generate", ErrTimeout)
	if !errors.Is(wrapped, ErrTimeout) {
		t.Error("OracleError should unwrap to ErrTimeout")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("message", "must not be empty")
	want := "validation failed on message: must not be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOracleError(t *testing.T) {
	t.Parallel()

	cause := errors.New("deadline exceeded")
	err := NewOracleError("groq", "classify", cause)

	want := "oracle error (provider=groq, op=classify): deadline exceeded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("OracleError should unwrap to its cause")
	}
}
