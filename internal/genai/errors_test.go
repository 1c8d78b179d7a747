package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorAction
	}{
		{"nil", nil, ActionFail},
		{"canceled", context.Canceled, ActionFail},
		{"deadline", context.DeadlineExceeded, ActionRetry},
		{"quota", errors.New("quota exceeded for this month"), ActionFallback},
		{"rate limit", errors.New("rate limit reached, slow down"), ActionRetry},
		{"server error", errors.New("503 service unavailable"), ActionRetry},
		{"timeout", errors.New("connection timeout"), ActionRetry},
		{"bad request", errors.New("400 bad request"), ActionFail},
		{"unauthorized", errors.New("invalid api key"), ActionFail},
		{"not found", errors.New("404 model not found"), ActionFail},
		{"unknown", errors.New("something odd happened"), ActionRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyError_APIError(t *testing.T) {
	t.Parallel()

	retryable := &APIError{Err: errors.New("boom"), StatusCode: 500, Provider: ProviderGroq}
	if got := ClassifyError(retryable); got != ActionRetry {
		t.Errorf("500 = %v, want retry", got)
	}

	permanent := &APIError{Err: errors.New("boom"), StatusCode: 403, Provider: ProviderGroq}
	if got := ClassifyError(permanent); got != ActionFail {
		t.Errorf("403 = %v, want fail", got)
	}

	// Wrapped APIError classifies the same way
	wrapped := fmt.Errorf("calling groq: %w", retryable)
	if got := ClassifyError(wrapped); got != ActionRetry {
		t.Errorf("wrapped 500 = %v, want retry", got)
	}
}

func TestAPIError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &APIError{Err: cause, StatusCode: 429, Provider: ProviderGemini}

	if err.Error() != "boom (status: 429)" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("APIError should unwrap to its cause")
	}
}

func TestIsPermanentAndShouldFallback(t *testing.T) {
	t.Parallel()

	if !IsPermanent(errors.New("403 forbidden")) {
		t.Error("403 should be permanent")
	}
	if IsPermanent(errors.New("503")) {
		t.Error("503 should not be permanent")
	}
	if !ShouldFallback(errors.New("billing quota exceeded")) {
		t.Error("quota errors should trigger fallback")
	}
}
