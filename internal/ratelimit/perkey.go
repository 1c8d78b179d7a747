// Package ratelimit provides rate limiting mechanisms using token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// PerKeyLimiterConfig configures a PerKeyLimiter instance.
type PerKeyLimiterConfig struct {
	MaxTokens     float64       // Burst capacity per key
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often idle buckets are swept
}

// PerKeyLimiter keeps an independent token bucket per key. The chat
// endpoint keys it by client IP, so one noisy caller cannot exhaust
// everyone else's budget. Buckets that have refilled back to full are
// swept periodically to keep the map bounded.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*Limiter
	config   PerKeyLimiterConfig
	onDrop   func()          // Optional callback when a request is dropped
	onUpdate func(count int) // Optional callback when the bucket count changes
	stop     chan struct{}
}

// NewPerKeyLimiter creates a per-key rate limiter.
//
// Example:
//
//	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
//	    MaxTokens:     30,
//	    RefillRate:    0.5, // 30 requests per minute sustained
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
//
//	if limiter.Allow(clientIP) {
//	    // Handle the chat request
//	}
func NewPerKeyLimiter(cfg PerKeyLimiterConfig) *PerKeyLimiter {
	l := &PerKeyLimiter{
		buckets: make(map[string]*Limiter),
		config:  cfg,
		stop:    make(chan struct{}),
	}

	go l.sweep()

	return l
}

// OnDrop sets a callback invoked whenever a request is rejected.
func (l *PerKeyLimiter) OnDrop(fn func()) {
	l.onDrop = fn
}

// OnUpdate sets a callback invoked with the bucket count after each sweep.
func (l *PerKeyLimiter) OnUpdate(fn func(count int)) {
	l.onUpdate = fn
}

// Allow reports whether a request for the key may proceed, consuming a
// token when it does. An empty key (the client IP could not be
// determined) is always allowed rather than funneling all such callers
// into one shared bucket.
func (l *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	allowed := l.bucketFor(key).Allow()
	if !allowed && l.onDrop != nil {
		l.onDrop()
	}
	return allowed
}

// bucketFor returns the key's bucket, creating it on first sight.
func (l *PerKeyLimiter) bucketFor(key string) *Limiter {
	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if bucket, ok = l.buckets[key]; !ok {
		bucket = New(l.config.MaxTokens, l.config.RefillRate)
		l.buckets[key] = bucket
	}
	return bucket
}

// GetAvailable returns the remaining tokens for a key. A key without a
// bucket yet has the full burst budget.
func (l *PerKeyLimiter) GetAvailable(key string) float64 {
	if key == "" {
		return l.config.MaxTokens
	}

	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()

	if !ok {
		return l.config.MaxTokens
	}
	return bucket.Available()
}

// GetActiveCount returns the number of tracked buckets.
func (l *PerKeyLimiter) GetActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// sweep periodically drops buckets that have refilled to capacity;
// those keys are indistinguishable from ones never seen.
func (l *PerKeyLimiter) sweep() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, bucket := range l.buckets {
				if bucket.IsFull() {
					delete(l.buckets, key)
				}
			}
			remaining := len(l.buckets)
			l.mu.Unlock()

			if l.onUpdate != nil {
				l.onUpdate(remaining)
			}
		}
	}
}

// Stop ends the sweep goroutine. Safe to call multiple times.
func (l *PerKeyLimiter) Stop() {
	select {
	case <-l.stop:
		// Already stopped
	default:
		close(l.stop)
	}
}
