// Package security screens chat messages for prompt injection and
// blocks repeat offenders by IP.
package security

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
)

// User-facing messages for blocked and warned requests.
const (
	blockedMessage        = "Your IP has been blocked due to malicious activity."
	warningMessageFormat  = "Warning: Malicious activity detected from your IP. Continued violations will result in a permanent ban. (%d warnings left)"
	detectionMethodRule   = "pattern"
	detectionMethodOracle = "oracle"
)

// Verdict is the outcome of screening one message.
type Verdict struct {
	Blocked    bool
	Message    string // user-facing, set when blocked or warned
	AttackType string // empty when the message is clean
}

// Guard coordinates injection detection and IP blacklisting.
type Guard struct {
	detector  *oracleDetector
	blacklist *Blacklist
	metrics   *metrics.Metrics
}

// NewGuard creates a Guard. The oracle may be nil, in which case only
// the heuristic patterns run.
func NewGuard(oracle genai.Generator, blacklist *Blacklist, m *metrics.Metrics) *Guard {
	g := &Guard{blacklist: blacklist, metrics: m}
	if oracle != nil {
		g.detector = &oracleDetector{oracle: oracle}
	}
	return g
}

// Analyze screens a message before it reaches the chat engine.
// Blacklisted IPs are rejected outright. Detected attacks are counted
// per IP; crossing the threshold blocks this and all future requests,
// below it the message is answered but carries a warning.
func (g *Guard) Analyze(ctx context.Context, query, ip, userID, sessionID string) Verdict {
	if blocked, err := g.blacklist.IsBlacklisted(ctx, ip); err != nil {
		slog.ErrorContext(ctx, "blacklist check failed", "error", err)
	} else if blocked {
		g.recordBlock("blacklisted")
		return Verdict{Blocked: true, Message: blockedMessage, AttackType: "blacklisted_ip"}
	}

	attackType := detectPatterns(query)
	method := detectionMethodRule

	// The oracle reviews messages the heuristics passed; on oracle
	// failure the heuristic verdict stands.
	if attackType == "" && g.detector != nil {
		flagged, err := g.detector.isAttack(ctx, query)
		if err != nil {
			slog.WarnContext(ctx, "injection detection oracle failed, keeping heuristic verdict", "error", err)
		} else if flagged {
			attackType = "prompt_injection"
			method = detectionMethodOracle
		}
	}

	if attackType == "" {
		return Verdict{}
	}

	count, nowBlacklisted, err := g.blacklist.RecordViolation(ctx, ip, attackType, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to record violation", "error", err)
	}

	event := Event{
		Timestamp:       time.Now(),
		IP:              ip,
		UserID:          userID,
		SessionID:       sessionID,
		Query:           query,
		AttackType:      attackType,
		DetectionMethod: method,
		Blacklisted:     nowBlacklisted,
	}
	if err := g.blacklist.RecordEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to record security event", "error", err)
	}

	if nowBlacklisted {
		if method == detectionMethodOracle {
			g.recordBlock("oracle_flagged")
		} else {
			g.recordBlock("injection_pattern")
		}
		slog.WarnContext(ctx, "ip blacklisted",
			"attack_type", attackType, "detection_method", method, "total_attempts", count)
		return Verdict{Blocked: true, Message: blockedMessage, AttackType: attackType}
	}

	remaining := g.blacklist.threshold - count - 1 // the final violation is the blacklisting one
	if remaining < 0 {
		remaining = 0
	}
	slog.WarnContext(ctx, "injection attempt warned",
		"attack_type", attackType, "detection_method", method, "total_attempts", count)
	return Verdict{
		Blocked:    false,
		Message:    fmt.Sprintf(warningMessageFormat, remaining),
		AttackType: attackType,
	}
}

// GetStats exposes blacklist statistics for the stats endpoint.
func (g *Guard) GetStats(ctx context.Context) (Stats, error) {
	return g.blacklist.GetStats(ctx)
}

func (g *Guard) recordBlock(reason string) {
	if g.metrics != nil {
		g.metrics.RecordSecurityBlock(reason)
	}
}
