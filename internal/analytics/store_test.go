package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tumchatbot/tum-chatbot-go/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func sampleInteraction(query string) Interaction {
	return Interaction{
		Timestamp:    time.Now(),
		UserID:       "user-1",
		SessionID:    "session-1",
		Query:        query,
		Response:     "The Mensa is in Building 8.",
		SearchMethod: "lexical",
		ResultCount:  3,
		ResponseTime: 0.42,
		UserRole:     "student",
		UserCampus:   "Heilbronn",
	}
}

func TestRecordInteractionAndStatistics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.RecordInteraction(ctx, sampleInteraction("where to eat?")); err != nil {
			t.Fatalf("RecordInteraction: %v", err)
		}
	}
	if err := store.RecordInteraction(ctx, sampleInteraction("wifi setup")); err != nil {
		t.Fatalf("RecordInteraction: %v", err)
	}

	stats, err := store.GetStatistics(ctx, 30)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalInteractions != 4 {
		t.Errorf("TotalInteractions = %d, want 4", stats.TotalInteractions)
	}
	if stats.SearchMethods["lexical"] != 4 {
		t.Errorf("SearchMethods = %v", stats.SearchMethods)
	}
	if stats.UserRoles["student"] != 4 {
		t.Errorf("UserRoles = %v", stats.UserRoles)
	}
	if stats.Campuses["Heilbronn"] != 4 {
		t.Errorf("Campuses = %v", stats.Campuses)
	}
	if len(stats.TopQueries) == 0 || stats.TopQueries[0].Query != "where to eat?" || stats.TopQueries[0].Frequency != 3 {
		t.Errorf("TopQueries = %v", stats.TopQueries)
	}
	if stats.AvgResponseTime < 0.41 || stats.AvgResponseTime > 0.43 {
		t.Errorf("AvgResponseTime = %v", stats.AvgResponseTime)
	}
}

func TestQueryAnalyticsNormalizesQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	// Same query modulo case and whitespace counts as one
	for _, q := range []string{"Where to eat?", "where to eat?  ", "WHERE TO EAT?"} {
		if err := store.RecordInteraction(ctx, sampleInteraction(q)); err != nil {
			t.Fatalf("RecordInteraction: %v", err)
		}
	}

	stats, err := store.GetStatistics(ctx, 30)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if len(stats.TopQueries) != 1 || stats.TopQueries[0].Frequency != 3 {
		t.Errorf("TopQueries = %v, want one entry with frequency 3", stats.TopQueries)
	}
}

func TestUserIDAnonymized(t *testing.T) {
	t.Parallel()

	anon := anonymize("sensitive-user-id")
	if anon == "sensitive-user-id" {
		t.Error("user ID must not be stored in the clear")
	}
	if len(anon) != 16 {
		t.Errorf("anonymized ID length = %d, want 16", len(anon))
	}
	if strings.Contains(anon, "sensitive") {
		t.Errorf("anonymized ID leaks input: %q", anon)
	}
	if anonymize("sensitive-user-id") != anon {
		t.Error("anonymization must be deterministic")
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.StartSession(ctx, "s1", "u1"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	stats, err := store.GetStatistics(ctx, 30)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, want 1", stats.ActiveSessions)
	}

	if err := store.EndSession(ctx, "s1", "student", "Garching"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
}

func TestGetPerformanceMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	// No data: percentiles stay zero
	m, err := store.GetPerformanceMetrics(ctx, 7)
	if err != nil {
		t.Fatalf("GetPerformanceMetrics: %v", err)
	}
	if m.ResponseTimePercentiles.P50 != 0 {
		t.Errorf("empty store P50 = %v", m.ResponseTimePercentiles.P50)
	}

	for _, rt := range []float64{0.1, 0.2, 0.3, 0.4, 1.5} {
		in := sampleInteraction("q")
		in.ResponseTime = rt
		if err := store.RecordInteraction(ctx, in); err != nil {
			t.Fatalf("RecordInteraction: %v", err)
		}
	}

	m, err = store.GetPerformanceMetrics(ctx, 7)
	if err != nil {
		t.Fatalf("GetPerformanceMetrics: %v", err)
	}
	if m.ResponseTimePercentiles.P50 != 0.3 {
		t.Errorf("P50 = %v, want 0.3", m.ResponseTimePercentiles.P50)
	}
	if m.ResponseTimePercentiles.P99 != 1.5 {
		t.Errorf("P99 = %v, want 1.5", m.ResponseTimePercentiles.P99)
	}
}

func TestRecorderDeliversAsync(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	rec := NewRecorder(store, nil, 8)

	rec.Record(sampleInteraction("async query"))
	rec.Close()

	stats, err := store.GetStatistics(context.Background(), 30)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalInteractions != 1 {
		t.Errorf("TotalInteractions = %d, want 1", stats.TotalInteractions)
	}
}
