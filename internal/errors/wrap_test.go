package errors

import (
	"errors"
	"testing"
)

func TestWrapper_Wrap(t *testing.T) {
	t.Parallel()

	w := NewWrapper("chat", "generate_response")

	if w.Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	cause := errors.New("boom")
	err := w.Wrap(cause, "could not answer")

	var wrapped *WrappedError
	if !errors.As(err, &wrapped) {
		t.Fatal("expected *WrappedError")
	}
	if wrapped.Module != "chat" || wrapped.Operation != "generate_response" {
		t.Errorf("unexpected module/operation: %s/%s", wrapped.Module, wrapped.Operation)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestWrapper_Wrapf(t *testing.T) {
	t.Parallel()

	w := NewWrapper("session", "get")
	err := w.Wrapf(errors.New("nope"), "session %s missing", "abc")

	if got := GetUserMessage(err); got != "session abc missing" {
		t.Errorf("GetUserMessage = %q, want %q", got, "session abc missing")
	}
}

func TestGetUserMessage(t *testing.T) {
	t.Parallel()

	if GetUserMessage(nil) != "" {
		t.Error("GetUserMessage(nil) should be empty")
	}
	if got := GetUserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetUserMessage(plain) = %q", got)
	}
}
