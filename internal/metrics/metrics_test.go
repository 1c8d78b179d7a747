package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.ChatRequestsTotal == nil {
		t.Error("ChatRequestsTotal is nil")
	}
	if m.ChatDurationSeconds == nil {
		t.Error("ChatDurationSeconds is nil")
	}
	if m.ActiveSessions == nil {
		t.Error("ActiveSessions is nil")
	}
	if m.SearchResultsCount == nil {
		t.Error("SearchResultsCount is nil")
	}
	if m.SearchEmptyTotal == nil {
		t.Error("SearchEmptyTotal is nil")
	}
	if m.ClarificationsTotal == nil {
		t.Error("ClarificationsTotal is nil")
	}
	if m.OracleRequestsTotal == nil {
		t.Error("OracleRequestsTotal is nil")
	}
	if m.OracleDurationSeconds == nil {
		t.Error("OracleDurationSeconds is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
	if m.SecurityBlocksTotal == nil {
		t.Error("SecurityBlocksTotal is nil")
	}
	if m.AnalyticsEventsTotal == nil {
		t.Error("AnalyticsEventsTotal is nil")
	}
	if m.AnalyticsDroppedTotal == nil {
		t.Error("AnalyticsDroppedTotal is nil")
	}
}

func TestRecordChatTurn(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordChatTurn("answered", 1.5)
	m.RecordChatTurn("clarification", 0.1)
	m.RecordChatTurn("answered", 2.0)

	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("answered")); got != 2 {
		t.Errorf("answered count = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("clarification")); got != 1 {
		t.Errorf("clarification count = %f, want 1", got)
	}
}

func TestRecordSearchResults(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordSearchResults(5)
	m.RecordSearchResults(0)

	if got := testutil.ToFloat64(m.SearchEmptyTotal); got != 1 {
		t.Errorf("empty search count = %f, want 1", got)
	}
}

func TestRecordOracleCall(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordOracleCall("gemini", "generate", "success", 2.5)
	m.RecordOracleCall("groq", "classify", "error", 0.3)

	if got := testutil.ToFloat64(m.OracleRequestsTotal.WithLabelValues("gemini", "generate", "success")); got != 1 {
		t.Errorf("gemini generate success = %f, want 1", got)
	}
}

func TestRecordRateLimiterDrop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordRateLimiterDrop("user")
	m.RecordRateLimiterDrop("user")

	if got := testutil.ToFloat64(m.RateLimiterDropped.WithLabelValues("user")); got != 2 {
		t.Errorf("user drops = %f, want 2", got)
	}
}

func TestSetActiveSessions(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.SetActiveSessions(7)
	if got := testutil.ToFloat64(m.ActiveSessions); got != 7 {
		t.Errorf("active sessions = %f, want 7", got)
	}
}
