package ctxutil

import (
	"context"
	"testing"
)

func TestUserID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if got := GetUserID(ctx); got != "" {
		t.Errorf("GetUserID on empty context = %q, want empty", got)
	}

	ctx = WithUserID(ctx, "u123")
	if got := GetUserID(ctx); got != "u123" {
		t.Errorf("GetUserID = %q, want u123", got)
	}
}

func TestSessionID(t *testing.T) {
	t.Parallel()
	ctx := WithSessionID(context.Background(), "sess-1")
	if got := GetSessionID(ctx); got != "sess-1" {
		t.Errorf("GetSessionID = %q, want sess-1", got)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if _, ok := GetRequestID(ctx); ok {
		t.Error("GetRequestID on empty context should return ok=false")
	}

	ctx = WithRequestID(ctx, "req-42")
	requestID, ok := GetRequestID(ctx)
	if !ok || requestID != "req-42" {
		t.Errorf("GetRequestID = (%q, %v), want (req-42, true)", requestID, ok)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()
	ctx := WithClientIP(context.Background(), "203.0.113.7")
	if got := GetClientIP(ctx); got != "203.0.113.7" {
		t.Errorf("GetClientIP = %q, want 203.0.113.7", got)
	}
}

func TestPreserveTracing(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	parent = WithUserID(parent, "u1")
	parent = WithSessionID(parent, "s1")
	parent = WithRequestID(parent, "r1")
	parent = WithClientIP(parent, "198.51.100.1")

	detached := PreserveTracing(parent)
	cancel()

	// Detached context survives parent cancellation
	if detached.Err() != nil {
		t.Error("Detached context should not be cancelled")
	}

	if got := GetUserID(detached); got != "u1" {
		t.Errorf("user ID = %q, want u1", got)
	}
	if got := GetSessionID(detached); got != "s1" {
		t.Errorf("session ID = %q, want s1", got)
	}
	if requestID, ok := GetRequestID(detached); !ok || requestID != "r1" {
		t.Errorf("request ID = (%q, %v), want (r1, true)", requestID, ok)
	}
	if got := GetClientIP(detached); got != "198.51.100.1" {
		t.Errorf("client IP = %q, want 198.51.100.1", got)
	}
}

func TestPreserveTracing_Empty(t *testing.T) {
	t.Parallel()
	detached := PreserveTracing(context.Background())
	if got := GetUserID(detached); got != "" {
		t.Errorf("user ID = %q, want empty", got)
	}
}
