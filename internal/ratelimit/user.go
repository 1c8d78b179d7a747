package ratelimit

import (
	"time"

	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
)

// UserRateLimiter tracks chat request limits per user ID.
// Each user gets a token bucket sized to the configured requests-per-window,
// so short bursts are tolerated while sustained traffic is capped.
type UserRateLimiter struct {
	pkl         *PerKeyLimiter
	maxRequests int
	window      time.Duration
}

// NewUserRateLimiter creates a per-user rate limiter allowing maxRequests
// per window. Remember to call Stop() when done to prevent goroutine leaks.
func NewUserRateLimiter(maxRequests int, window time.Duration, m *metrics.Metrics) *UserRateLimiter {
	u := &UserRateLimiter{
		maxRequests: maxRequests,
		window:      window,
	}

	u.pkl = NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     float64(maxRequests),
		RefillRate:    float64(maxRequests) / window.Seconds(),
		CleanupPeriod: 5 * time.Minute,
	})

	if m != nil {
		u.pkl.OnDrop(func() {
			m.RecordRateLimiterDrop("user")
		})
	}

	return u
}

// Allow checks if a chat request from userID is allowed under the rate limit.
// Returns true if allowed (token consumed), false if rate limit exceeded.
func (u *UserRateLimiter) Allow(userID string) bool {
	return u.pkl.Allow(userID)
}

// GetAvailable returns the number of remaining requests for a user.
// Returns the full budget if the user has no limiter yet.
func (u *UserRateLimiter) GetAvailable(userID string) float64 {
	return u.pkl.GetAvailable(userID)
}

// GetActiveCount returns the current number of active user limiters.
func (u *UserRateLimiter) GetActiveCount() int {
	return u.pkl.GetActiveCount()
}

// Stop gracefully stops the cleanup goroutine.
// Safe to call multiple times.
func (u *UserRateLimiter) Stop() {
	u.pkl.Stop()
}
