package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	ActiveSessions      prometheus.Gauge

	// Retrieval metrics
	SearchResultsCount prometheus.Histogram
	SearchEmptyTotal   prometheus.Counter

	// Clarification metrics
	ClarificationsTotal *prometheus.CounterVec
	PendingResumedTotal prometheus.Counter
	ContextUpdatesTotal *prometheus.CounterVec
	ExtractionFallbacks prometheus.Counter

	// Oracle metrics
	OracleRequestsTotal   *prometheus.CounterVec
	OracleDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Security metrics
	SecurityBlocksTotal *prometheus.CounterVec

	// Analytics metrics
	AnalyticsEventsTotal  *prometheus.CounterVec
	AnalyticsDroppedTotal prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_chat_requests_total",
				Help: "Total number of chat turns by outcome",
			},
			[]string{"outcome"}, // outcome: answered, clarification, blocked, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tum_chat_duration_seconds",
				Help:    "Chat turn processing duration in seconds by outcome",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60}, // Matches 60s turn timeout
			},
			[]string{"outcome"},
		),

		ActiveSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "tum_active_sessions",
				Help: "Number of sessions currently held in memory",
			},
		),

		// Retrieval metrics
		SearchResultsCount: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tum_search_results_count",
				Help:    "Number of documents returned per query after score filtering",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),

		SearchEmptyTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "tum_search_empty_total",
				Help: "Total number of queries with no matching documents",
			},
		),

		// Clarification metrics
		ClarificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_clarifications_total",
				Help: "Total number of clarification prompts by missing field",
			},
			[]string{"missing"}, // missing: both, role, campus
		),

		PendingResumedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "tum_pending_resumed_total",
				Help: "Total number of original queries resumed after clarification",
			},
		),

		ContextUpdatesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_context_updates_total",
				Help: "Total number of session context updates by field",
			},
			[]string{"field"}, // field: role, campus
		),

		ExtractionFallbacks: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "tum_extraction_fallbacks_total",
				Help: "Total number of context extractions served by the keyword fallback",
			},
		),

		// Oracle metrics
		OracleRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_oracle_requests_total",
				Help: "Total number of oracle calls by provider, operation and status",
			},
			[]string{"provider", "operation", "status"}, // status: success, error, timeout
		),

		OracleDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tum_oracle_duration_seconds",
				Help:    "Oracle call duration in seconds by provider and operation",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30}, // Matches 30s generate timeout
			},
			[]string{"provider", "operation"}, // operation: generate, extract, classify, security
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_http_errors_total",
				Help: "Total HTTP errors by type and endpoint",
			},
			[]string{"error_type", "endpoint"}, // error_type: bad_request, rate_limit, internal, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: user, global
		),

		// Security metrics
		SecurityBlocksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_security_blocks_total",
				Help: "Total number of blocked queries by reason",
			},
			[]string{"reason"}, // reason: injection_pattern, oracle_flagged, blacklisted
		),

		// Analytics metrics
		AnalyticsEventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tum_analytics_events_total",
				Help: "Total number of analytics events recorded by type",
			},
			[]string{"event_type"}, // event_type: chat, session_start, session_end, security
		),

		AnalyticsDroppedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "tum_analytics_dropped_total",
				Help: "Total number of analytics events dropped because the buffer was full",
			},
		),
	}

	return m
}

// RecordChatTurn records a processed chat turn with its outcome
func (m *Metrics) RecordChatTurn(outcome string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(outcome).Inc()
	m.ChatDurationSeconds.WithLabelValues(outcome).Observe(duration)
}

// SetActiveSessions records the number of in-memory sessions
func (m *Metrics) SetActiveSessions(count int) {
	m.ActiveSessions.Set(float64(count))
}

// RecordSearchResults records the document count returned for a query
func (m *Metrics) RecordSearchResults(count int) {
	m.SearchResultsCount.Observe(float64(count))
	if count == 0 {
		m.SearchEmptyTotal.Inc()
	}
}

// RecordClarification records a clarification prompt by missing field
func (m *Metrics) RecordClarification(missing string) {
	m.ClarificationsTotal.WithLabelValues(missing).Inc()
}

// RecordPendingResumed records a resumed original query
func (m *Metrics) RecordPendingResumed() {
	m.PendingResumedTotal.Inc()
}

// RecordContextUpdate records a session context field update
func (m *Metrics) RecordContextUpdate(field string) {
	m.ContextUpdatesTotal.WithLabelValues(field).Inc()
}

// RecordExtractionFallback records a context extraction served by keywords
func (m *Metrics) RecordExtractionFallback() {
	m.ExtractionFallbacks.Inc()
}

// RecordOracleCall records an oracle call with status and duration
func (m *Metrics) RecordOracleCall(provider, operation, status string, duration float64) {
	m.OracleRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	m.OracleDurationSeconds.WithLabelValues(provider, operation).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordSecurityBlock records a blocked query
func (m *Metrics) RecordSecurityBlock(reason string) {
	m.SecurityBlocksTotal.WithLabelValues(reason).Inc()
}

// RecordAnalyticsEvent records a persisted analytics event
func (m *Metrics) RecordAnalyticsEvent(eventType string) {
	m.AnalyticsEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordAnalyticsDrop records an analytics event lost to a full buffer
func (m *Metrics) RecordAnalyticsDrop() {
	m.AnalyticsDroppedTotal.Inc()
}
