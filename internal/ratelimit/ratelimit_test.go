package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	limiter := New(2, 0.001)

	if !limiter.Allow() {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow() {
		t.Error("second request should be allowed")
	}
	if limiter.Allow() {
		t.Error("third request should be denied with empty bucket")
	}
}

func TestLimiter_Refill(t *testing.T) {
	t.Parallel()

	// 50 tokens/sec refill for a fast test
	limiter := New(1, 50)
	limiter.Allow()

	if limiter.Allow() {
		t.Error("bucket should be empty immediately after consuming")
	}

	time.Sleep(50 * time.Millisecond)
	if !limiter.Allow() {
		t.Error("bucket should refill after waiting")
	}
}

func TestLimiter_Wait_ContextCancel(t *testing.T) {
	t.Parallel()

	limiter := New(1, 0.001)
	limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Wait should return ctx error when no token arrives in time")
	}
}

func TestNewPerWindow(t *testing.T) {
	t.Parallel()

	limiter := NewPerWindow(30, time.Minute)

	// Full window budget available as burst
	for i := 0; i < 30; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow() {
		t.Error("request beyond window budget should be denied")
	}
}

func TestLimiter_Reset(t *testing.T) {
	t.Parallel()

	limiter := New(1, 0.001)
	limiter.Allow()
	limiter.Reset()

	if !limiter.Allow() {
		t.Error("request after Reset should be allowed")
	}
}

func TestLimiter_IsFull(t *testing.T) {
	t.Parallel()

	limiter := New(5, 0.001)
	if !limiter.IsFull() {
		t.Error("fresh limiter should be full")
	}
	limiter.Allow()
	if limiter.IsFull() {
		t.Error("limiter should not be full after consuming")
	}
}
