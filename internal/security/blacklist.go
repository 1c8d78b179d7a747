package security

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Blacklist tracks injection violations per IP in SQLite. An IP whose
// violation count reaches the threshold is blacklisted permanently
// (the table survives restarts).
type Blacklist struct {
	db        *sql.DB
	threshold int
}

const blacklistSchema = `
CREATE TABLE IF NOT EXISTS ip_blacklist (
	ip_address     TEXT PRIMARY KEY,
	attack_type    TEXT NOT NULL,
	reason         TEXT NOT NULL,
	first_detected TIMESTAMP NOT NULL,
	last_updated   TIMESTAMP NOT NULL,
	total_attempts INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS security_events (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp        TIMESTAMP NOT NULL,
	ip_address       TEXT NOT NULL,
	user_id          TEXT NOT NULL,
	session_id       TEXT NOT NULL,
	query            TEXT NOT NULL,
	attack_type      TEXT NOT NULL,
	detection_method TEXT NOT NULL,
	blacklisted      BOOLEAN NOT NULL
);
`

// NewBlacklist creates the blacklist store and its schema.
func NewBlacklist(db *sql.DB, threshold int) (*Blacklist, error) {
	if threshold <= 0 {
		threshold = 3
	}
	if _, err := db.Exec(blacklistSchema); err != nil {
		return nil, fmt.Errorf("failed to create security schema: %w", err)
	}
	return &Blacklist{db: db, threshold: threshold}, nil
}

// IsBlacklisted reports whether the IP has reached the violation
// threshold. Database errors resolve to false so a broken store never
// locks legitimate users out.
func (b *Blacklist) IsBlacklisted(ctx context.Context, ip string) (bool, error) {
	var attempts int
	err := b.db.QueryRowContext(ctx,
		"SELECT total_attempts FROM ip_blacklist WHERE ip_address = ?", ip,
	).Scan(&attempts)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return attempts >= b.threshold, nil
}

// ViolationCount returns the recorded violation count for the IP.
func (b *Blacklist) ViolationCount(ctx context.Context, ip string) (int, error) {
	var attempts int
	err := b.db.QueryRowContext(ctx,
		"SELECT total_attempts FROM ip_blacklist WHERE ip_address = ?", ip,
	).Scan(&attempts)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read violation count: %w", err)
	}
	return attempts, nil
}

// RecordViolation increments the violation count for the IP, creating
// the row on first offense. Returns the new count and whether the IP
// is now blacklisted.
func (b *Blacklist) RecordViolation(ctx context.Context, ip, attackType, reason string) (int, bool, error) {
	now := time.Now().UTC()
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO ip_blacklist (ip_address, attack_type, reason, first_detected, last_updated, total_attempts)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(ip_address) DO UPDATE SET
			total_attempts = total_attempts + 1,
			attack_type = excluded.attack_type,
			reason = excluded.reason,
			last_updated = excluded.last_updated`,
		ip, attackType, reason, now, now)
	if err != nil {
		return 0, false, fmt.Errorf("failed to record violation: %w", err)
	}

	count, err := b.ViolationCount(ctx, ip)
	if err != nil {
		return 0, false, err
	}
	return count, count >= b.threshold, nil
}

// RecordEvent stores a security event for later analysis.
func (b *Blacklist) RecordEvent(ctx context.Context, e Event) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO security_events
		(timestamp, ip_address, user_id, session_id, query, attack_type, detection_method, blacklisted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC(), e.IP, e.UserID, e.SessionID, e.Query, e.AttackType, e.DetectionMethod, e.Blacklisted)
	if err != nil {
		return fmt.Errorf("failed to record security event: %w", err)
	}
	return nil
}

// Event is one detected attack occurrence.
type Event struct {
	Timestamp       time.Time
	IP              string
	UserID          string
	SessionID       string
	Query           string
	AttackType      string
	DetectionMethod string // "pattern" or "oracle"
	Blacklisted     bool
}

// Stats summarizes the blacklist for the security stats endpoint.
type Stats struct {
	TotalBlacklisted int            `json:"total_blacklisted"`
	AttackBreakdown  map[string]int `json:"attack_breakdown"`
	RecentEvents24h  int            `json:"recent_events_24h"`
}

// GetStats returns aggregate blacklist statistics.
func (b *Blacklist) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{AttackBreakdown: make(map[string]int)}

	err := b.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ip_blacklist WHERE total_attempts >= ?", b.threshold,
	).Scan(&stats.TotalBlacklisted)
	if err != nil {
		return stats, fmt.Errorf("failed to count blacklisted IPs: %w", err)
	}

	rows, err := b.db.QueryContext(ctx,
		"SELECT attack_type, COUNT(*) FROM ip_blacklist GROUP BY attack_type")
	if err != nil {
		return stats, fmt.Errorf("failed to read attack breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var attackType string
		var count int
		if err := rows.Scan(&attackType, &count); err != nil {
			return stats, fmt.Errorf("failed to scan attack breakdown: %w", err)
		}
		stats.AttackBreakdown[attackType] = count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to iterate attack breakdown: %w", err)
	}

	err = b.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM security_events WHERE timestamp > ?",
		time.Now().UTC().Add(-24*time.Hour),
	).Scan(&stats.RecentEvents24h)
	if err != nil {
		return stats, fmt.Errorf("failed to count recent events: %w", err)
	}

	return stats, nil
}
