// Package extract pulls user role and campus out of chat messages.
// The oracle handles free-form phrasing ("I'm doing my master's in
// Garching"); a keyword fallback covers oracle outages.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

// Result holds the role and campus found in a message. Empty fields
// mean the message did not mention them.
type Result struct {
	Role   string
	Campus string
}

// Empty reports whether nothing was extracted.
func (r Result) Empty() bool {
	return r.Role == "" && r.Campus == ""
}

// Extractor extracts user context from chat messages.
type Extractor struct {
	oracle  genai.Generator
	metrics *metrics.Metrics
}

// New creates an Extractor. The oracle may be nil, in which case only
// keyword extraction is used.
func New(oracle genai.Generator, m *metrics.Metrics) *Extractor {
	return &Extractor{oracle: oracle, metrics: m}
}

// Extract returns the role and campus mentioned in the query.
// Oracle failures fall back to keyword matching; unparsable oracle
// output yields an empty result (the model answered, just not in the
// agreed format, so guessing from keywords would second-guess it).
func (e *Extractor) Extract(ctx context.Context, query string) Result {
	if e.oracle == nil {
		return e.fallback(ctx, query)
	}

	ctx, cancel := context.WithTimeout(ctx, config.OracleExtract)
	defer cancel()

	raw, err := e.oracle.Generate(ctx, genai.Request{
		Operation:   genai.OpExtract,
		Prompt:      extractionPrompt(query),
		Temperature: 0,
		MaxTokens:   100,
	})
	if err != nil {
		slog.WarnContext(ctx, "context extraction oracle failed, using keyword fallback", "error", err)
		return e.fallback(ctx, query)
	}

	result, err := parseExtraction(raw)
	if err != nil {
		slog.WarnContext(ctx, "context extraction output unparsable", "error", err, "raw", raw)
		return Result{}
	}
	return result
}

// parseExtraction decodes the oracle's JSON answer. Models wrap JSON
// in markdown code fences often enough that stripping them is part of
// the contract.
func parseExtraction(raw string) (Result, error) {
	raw = stripCodeFence(strings.TrimSpace(raw))

	var payload struct {
		Role   string `json:"role"`
		Campus string `json:"campus"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Result{}, fmt.Errorf("%w: %v", apperrors.ErrExtractionParse, err)
	}

	var result Result
	if role := strings.ToLower(strings.TrimSpace(payload.Role)); role != "" && role != "null" {
		if session.IsValidRole(role) {
			result.Role = role
		}
	}
	if campus := titleCase(strings.TrimSpace(payload.Campus)); campus != "" && campus != "Null" {
		if session.IsValidCampus(campus) {
			result.Campus = campus
		}
	}
	return result, nil
}

// stripCodeFence unwraps a ```json ... ``` block if present.
func stripCodeFence(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	s = strings.TrimSpace(parts[1])
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// fallback does simple keyword matching. First match wins within each
// field, so "phd student" resolves to student (the student check runs
// first, mirroring how the role lists are ordered in the prompt).
func (e *Extractor) fallback(ctx context.Context, query string) Result {
	if e.metrics != nil {
		e.metrics.RecordExtractionFallback()
	}

	lower := strings.ToLower(query)
	var result Result

	roleRules := []struct {
		role     string
		keywords []string
	}{
		{"student", []string{"student", "studying", "study"}},
		{"employee", []string{"employee", "staff", "work", "working"}},
		{"professor", []string{"professor", "prof"}},
		{"lecturer", []string{"lecturer", "instructor", "teacher"}},
		{"visitor", []string{"visitor", "visiting", "guest"}},
		{"phd", []string{"phd", "doctoral"}},
		{"postdoc", []string{"postdoc"}},
	}
	for _, rule := range roleRules {
		if containsAny(lower, rule.keywords) {
			result.Role = rule.role
			break
		}
	}

	campusRules := []struct {
		campus   string
		keywords []string
	}{
		{"Munich", []string{"munich", "münchen"}},
		{"Garching", []string{"garching"}},
		{"Heilbronn", []string{"heilbronn", "bildungscampus"}},
		{"Weihenstephan", []string{"weihenstephan"}},
	}
	for _, rule := range campusRules {
		if containsAny(lower, rule.keywords) {
			result.Campus = rule.campus
			break
		}
	}

	if !result.Empty() {
		slog.DebugContext(ctx, "keyword extraction matched", "role", result.Role, "campus", result.Campus)
	}
	return result
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
