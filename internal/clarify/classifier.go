package clarify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
)

// Classifier decides whether a question needs user context to answer.
type Classifier interface {
	NeedsContext(ctx context.Context, query string) bool
}

// OracleClassifier asks the oracle for a YES/NO decision. Failures
// resolve to NO so an oracle outage never traps users in a
// clarification loop.
type OracleClassifier struct {
	oracle genai.Generator
}

// NewOracleClassifier creates a classifier backed by the oracle.
func NewOracleClassifier(oracle genai.Generator) *OracleClassifier {
	return &OracleClassifier{oracle: oracle}
}

// NeedsContext reports whether the query needs role/campus context.
func (c *OracleClassifier) NeedsContext(ctx context.Context, query string) bool {
	ctx, cancel := context.WithTimeout(ctx, config.OracleClassify)
	defer cancel()

	resp, err := c.oracle.Generate(ctx, genai.Request{
		Operation:   genai.OpClassify,
		Prompt:      contextCheckPrompt(query),
		Temperature: 0,
		MaxTokens:   10,
	})
	if err != nil {
		slog.WarnContext(ctx, "context check oracle failed, assuming no context needed", "error", err)
		return false
	}

	return strings.Contains(strings.ToUpper(resp), "YES")
}

// StaticClassifier never requests context. Used when no oracle
// provider is configured.
type StaticClassifier struct{}

// NeedsContext always returns false.
func (StaticClassifier) NeedsContext(context.Context, string) bool {
	return false
}
