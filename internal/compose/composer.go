// Package compose turns retrieved knowledge entries into the final
// chat answer via the generation oracle, with a fixed apology when
// every provider is down.
package compose

import (
	"context"
	"log/slog"

	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
	"github.com/tumchatbot/tum-chatbot-go/internal/search"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

// FallbackMessage is returned when generation fails entirely.
const FallbackMessage = "I apologize, but I'm experiencing technical difficulties. Please try again later or contact IT support at servicedesk@tum.de"

// Input carries everything the composer needs for one answer.
type Input struct {
	Query       string
	UserContext session.Context
	Documents   []search.Result
	History     []session.Entry
	Resuming    bool
}

// Composer generates formatted answers.
type Composer struct {
	oracle genai.Generator
}

// New creates a Composer. The oracle may be nil, in which case every
// answer degrades to the fallback message.
func New(oracle genai.Generator) *Composer {
	return &Composer{oracle: oracle}
}

// Compose generates and formats the answer for the turn. The second
// return value reports whether the fixed fallback was used.
func (c *Composer) Compose(ctx context.Context, in Input) (string, bool) {
	if c.oracle == nil {
		return FallbackMessage, true
	}

	genCtx, cancel := context.WithTimeout(ctx, config.OracleGenerate)
	defer cancel()

	raw, err := c.oracle.Generate(genCtx, genai.Request{
		Operation:   genai.OpGenerate,
		Prompt:      buildPrompt(in),
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		slog.ErrorContext(ctx, "answer generation failed", "error", err, "documents", len(in.Documents))
		return FallbackMessage, true
	}

	return Format(raw), false
}
