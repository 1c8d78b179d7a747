// Package main provides the chatbot API server entry point.
package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tumchatbot/tum-chatbot-go/internal/chat"
	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/logger"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

// startBackgroundJobs runs the periodic maintenance loops until ctx is
// cancelled. The returned group's Wait reports when they have stopped.
func startBackgroundJobs(ctx context.Context, sessions *session.Store, engine *chat.Engine, m *metrics.Metrics, log *logger.Logger) *errgroup.Group {
	g, ctx := errgroup.WithContext(ctx)

	// Evict idle sessions
	g.Go(func() error {
		ticker := time.NewTicker(config.SessionEvictionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if evicted := sessions.EvictIdle(); evicted > 0 {
					log.WithField("evicted", evicted).Info("Idle sessions evicted")
				}
			}
		}
	})

	// Refresh the active session gauge
	g.Go(func() error {
		ticker := time.NewTicker(config.MetricsRefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				m.SetActiveSessions(engine.SessionCount())
			}
		}
	})

	return g
}
