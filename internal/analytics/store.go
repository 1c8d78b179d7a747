// Package analytics persists usage statistics in SQLite and serves
// the aggregate queries behind the statistics endpoints.
package analytics

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store is the synchronous SQLite layer. Writes from the request path
// should go through Recorder instead.
type Store struct {
	db *sql.DB
}

// NewStore creates the analytics store and its schema.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create analytics schema: %w", err)
	}
	return &Store{db: db}, nil
}

// anonymize hashes a user ID before it touches disk.
func anonymize(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])[:16]
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// RecordInteraction stores one answered turn and updates the per-query
// frequency table in the same transaction.
func (s *Store) RecordInteraction(ctx context.Context, in Interaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_interactions
		(timestamp, user_id, session_id, query, response, search_method,
		 search_results_count, response_time, user_role, user_campus,
		 query_length, response_length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(in.Timestamp), anonymize(in.UserID), in.SessionID,
		in.Query, in.Response, in.SearchMethod,
		in.ResultCount, in.ResponseTime, nullable(in.UserRole), nullable(in.UserCampus),
		len(in.Query), len(in.Response))
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	if err := updateQueryAnalytics(ctx, tx, in.Query, in.ResponseTime); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interaction: %w", err)
	}
	return nil
}

// updateQueryAnalytics upserts the frequency row for the query,
// folding the new response time into the running average.
func updateQueryAnalytics(ctx context.Context, tx *sql.Tx, query string, responseTime float64) error {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	queryHash := hex.EncodeToString(hash[:])

	var frequency int
	var avg float64
	err := tx.QueryRowContext(ctx,
		"SELECT frequency, avg_response_time FROM query_analytics WHERE query_hash = ?",
		queryHash,
	).Scan(&frequency, &avg)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO query_analytics (query_hash, query_text, avg_response_time)
			VALUES (?, ?, ?)`,
			queryHash, query, responseTime)
	case err != nil:
		return fmt.Errorf("failed to read query analytics: %w", err)
	default:
		newFrequency := frequency + 1
		newAvg := (avg*float64(frequency) + responseTime) / float64(newFrequency)
		_, err = tx.ExecContext(ctx, `
			UPDATE query_analytics
			SET frequency = ?, avg_response_time = ?, last_seen = ?
			WHERE query_hash = ?`,
			newFrequency, newAvg, formatTime(time.Now()), queryHash)
	}
	if err != nil {
		return fmt.Errorf("failed to update query analytics: %w", err)
	}
	return nil
}

// StartSession records the beginning of a session.
func (s *Store) StartSession(ctx context.Context, sessionID, userID string) error {
	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_sessions (session_id, user_id, start_time, updated_at)
		VALUES (?, ?, ?, ?)`,
		sessionID, anonymize(userID), now, now)
	if err != nil {
		return fmt.Errorf("failed to start session record: %w", err)
	}
	return nil
}

// EndSession records the end of a session, keeping the last known
// user context for the role/campus breakdowns.
func (s *Store) EndSession(ctx context.Context, sessionID, role, campus string) error {
	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions
		SET end_time = ?, updated_at = ?, user_role = ?, user_campus = ?
		WHERE session_id = ?`,
		now, now, nullable(role), nullable(campus), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session record: %w", err)
	}
	return nil
}

// GetStatistics aggregates usage for the trailing period.
func (s *Store) GetStatistics(ctx context.Context, days int) (Statistics, error) {
	if days <= 0 {
		days = 30
	}
	stats := Statistics{
		PeriodDays:    days,
		SearchMethods: make(map[string]int),
		UserRoles:     make(map[string]int),
		Campuses:      make(map[string]int),
		GeneratedAt:   time.Now().UTC(),
	}
	since := formatTime(time.Now().AddDate(0, 0, -days))

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(response_time), 0) FROM chat_interactions WHERE timestamp >= ?",
		since,
	).Scan(&stats.TotalInteractions, &stats.AvgResponseTime)
	if err != nil {
		return stats, fmt.Errorf("failed to read interaction totals: %w", err)
	}

	for _, q := range []struct {
		sql  string
		dest map[string]int
	}{
		{"SELECT search_method, COUNT(*) FROM chat_interactions WHERE timestamp >= ? GROUP BY search_method", stats.SearchMethods},
		{"SELECT user_role, COUNT(*) FROM chat_interactions WHERE timestamp >= ? AND user_role IS NOT NULL GROUP BY user_role", stats.UserRoles},
		{"SELECT user_campus, COUNT(*) FROM chat_interactions WHERE timestamp >= ? AND user_campus IS NOT NULL GROUP BY user_campus", stats.Campuses},
	} {
		if err := s.countsInto(ctx, q.sql, since, q.dest); err != nil {
			return stats, err
		}
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT query_text, frequency FROM query_analytics ORDER BY frequency DESC LIMIT 10")
	if err != nil {
		return stats, fmt.Errorf("failed to read top queries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qf QueryFrequency
		if err := rows.Scan(&qf.Query, &qf.Frequency); err != nil {
			return stats, fmt.Errorf("failed to scan top query: %w", err)
		}
		stats.TopQueries = append(stats.TopQueries, qf)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to iterate top queries: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_sessions WHERE end_time IS NULL OR end_time >= ?",
		since,
	).Scan(&stats.ActiveSessions)
	if err != nil {
		return stats, fmt.Errorf("failed to count sessions: %w", err)
	}

	return stats, nil
}

func (s *Store) countsInto(ctx context.Context, query, since string, dest map[string]int) error {
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return fmt.Errorf("failed to read distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan distribution: %w", err)
		}
		dest[key] = count
	}
	return rows.Err()
}

// GetPerformanceMetrics returns response-time percentiles for the
// trailing period.
func (s *Store) GetPerformanceMetrics(ctx context.Context, days int) (PerformanceMetrics, error) {
	if days <= 0 {
		days = 7
	}
	metrics := PerformanceMetrics{PeriodDays: days, GeneratedAt: time.Now().UTC()}
	since := formatTime(time.Now().AddDate(0, 0, -days))

	rows, err := s.db.QueryContext(ctx,
		"SELECT response_time FROM chat_interactions WHERE timestamp >= ?", since)
	if err != nil {
		return metrics, fmt.Errorf("failed to read response times: %w", err)
	}
	defer rows.Close()

	var times []float64
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return metrics, fmt.Errorf("failed to scan response time: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return metrics, fmt.Errorf("failed to iterate response times: %w", err)
	}

	if len(times) > 0 {
		sort.Float64s(times)
		metrics.ResponseTimePercentiles = Percentiles{
			P50: times[len(times)/2],
			P95: times[int(float64(len(times))*0.95)],
			P99: times[int(float64(len(times))*0.99)],
		}
	}
	return metrics, nil
}

// Ping reports database health for the readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
