// Package config provides centralized timeout constants for the application.
//
// These values are tuned for the chat request path:
//   - Oracle generation dominates a turn (LLM latency up to tens of seconds)
//   - Extraction and classification calls are short structured prompts
//   - Analytics writes are async and must never block a turn
package config

import "time"

// Chat turn timeouts
const (
	// ChatTurnProcessing is the timeout for processing a single chat turn.
	// This covers search, context extraction, clarification checks, and
	// response generation including provider fallback.
	ChatTurnProcessing = 60 * time.Second

	// OracleGenerate is the timeout for a single response generation call.
	// Long answers with knowledge context can take a while on free tiers.
	OracleGenerate = 30 * time.Second

	// OracleExtract is the timeout for a context extraction call.
	// Extraction prompts are small and the reply is a short JSON object.
	OracleExtract = 10 * time.Second

	// OracleClassify is the timeout for a YES/NO classification call.
	OracleClassify = 10 * time.Second
)

// HTTP server timeouts
const (
	// HTTPRead is the server read timeout. Chat payloads are small JSON.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the server write timeout.
	// Must accommodate ChatTurnProcessing plus response serialization.
	HTTPWrite = 65 * time.Second

	// HTTPIdle is the idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Storage timeouts
const (
	// SQLiteBusy is the busy timeout for the analytics database.
	// WAL mode keeps readers unblocked; writers queue behind this.
	SQLiteBusy = 5 * time.Second

	// AnalyticsFlush is how long the async recorder waits for pending
	// events to drain during shutdown.
	AnalyticsFlush = 5 * time.Second
)

// Background job intervals
const (
	// SessionEvictionInterval is how often idle sessions are scanned and
	// evicted.
	SessionEvictionInterval = 5 * time.Minute

	// MetricsRefreshInterval is how often gauge metrics (active sessions)
	// are recomputed.
	MetricsRefreshInterval = 30 * time.Second
)
