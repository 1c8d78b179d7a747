// Package genai provides the oracle layer for LLM-backed generation.
// This file contains the provider fallback chain.
package genai

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
)

// FallbackGenerator tries an ordered chain of providers.
// Each provider gets retried with backoff before falling through to
// the next; permanent errors skip straight to the next provider.
type FallbackGenerator struct {
	chain   []Generator
	retry   RetryConfig
	metrics *metrics.Metrics
}

// NewFallbackGenerator creates a fallback chain over the given
// generators, tried in order. The metrics reporter is optional.
func NewFallbackGenerator(chain []Generator, retry RetryConfig, m *metrics.Metrics) *FallbackGenerator {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryConfig()
	}
	return &FallbackGenerator{chain: chain, retry: retry, metrics: m}
}

// Generate tries each provider in the chain until one succeeds.
// Returns ErrOracleUnavailable when every provider fails.
func (f *FallbackGenerator) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for _, gen := range f.chain {
		provider := string(gen.Provider())

		var result string
		start := time.Now()
		err := WithRetry(ctx, f.retry, func() error {
			var genErr error
			result, genErr = gen.Generate(ctx, req)
			return genErr
		})
		f.record(provider, req.Operation, err, time.Since(start))

		if err == nil {
			return result, nil
		}
		lastErr = err

		// Context errors end the whole chain, not just this provider
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	if lastErr == nil {
		return "", apperrors.ErrOracleUnavailable
	}
	return "", apperrors.NewOracleError("all", string(req.Operation), lastErr)
}

// Provider returns the primary provider of the chain.
func (f *FallbackGenerator) Provider() Provider {
	if len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

func (f *FallbackGenerator) record(provider string, op Operation, err error, elapsed time.Duration) {
	if f.metrics == nil {
		return
	}
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		status = "timeout"
	default:
		status = "error"
	}
	f.metrics.RecordOracleCall(provider, string(op), status, elapsed.Seconds())
}
