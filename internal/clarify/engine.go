// Package clarify decides when the chatbot should ask for the user's
// role or campus before answering, and phrases those questions.
package clarify

import (
	"context"
	"strings"

	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

// Missing names the context fields that must be asked for.
type Missing string

const (
	MissingNone   Missing = ""
	MissingRole   Missing = "role"
	MissingCampus Missing = "campus"
	MissingBoth   Missing = "both"
)

// Prompt returns the clarification question to send for the missing
// fields.
func (m Missing) Prompt() string {
	switch m {
	case MissingBoth:
		return "Please tell me your role (student/employee/visitor) and campus (Munich/Garching/Heilbronn/Weihenstephan) so I can help you better."
	case MissingRole:
		return "Please tell me your role (student/employee/visitor) so I can provide the right information."
	case MissingCampus:
		return "Please tell me which campus (Munich/Garching/Heilbronn/Weihenstephan) so I can give you specific details."
	default:
		return ""
	}
}

// Questions with these words are campus-specific enough to justify
// asking for a campus when the role is already known.
var locationKeywords = []string{
	"where", "location", "building", "room", "parking", "mensa",
	"library", "map", "address", "directions",
}

// Engine applies the clarification rules for a turn.
type Engine struct {
	classifier Classifier
}

// New creates an Engine. The classifier decides the ambiguous cases
// where neither field is known.
func New(classifier Classifier) *Engine {
	if classifier == nil {
		classifier = StaticClassifier{}
	}
	return &Engine{classifier: classifier}
}

// NeedsInfo returns which context fields to ask for before answering
// the query, or MissingNone when the answer can proceed.
//
// The rules are ordered by strength:
//  1. Both fields known: never ask again.
//  2. Role known, campus not: ask for the campus only on
//     location-flavored questions.
//  3. Small talk and emotional statements: never ask.
//  4. Otherwise the classifier decides, and only then are the missing
//     fields reported.
func (e *Engine) NeedsInfo(ctx context.Context, query string, uc session.Context) Missing {
	if uc.Complete() {
		return MissingNone
	}

	if uc.Role != "" && uc.Campus == "" {
		lower := strings.ToLower(query)
		for _, kw := range locationKeywords {
			if strings.Contains(lower, kw) {
				return MissingCampus
			}
		}
		return MissingNone
	}

	if isPersonalConversation(query) {
		return MissingNone
	}

	if !e.classifier.NeedsContext(ctx, query) {
		return MissingNone
	}

	switch {
	case uc.Role == "" && uc.Campus == "":
		return MissingBoth
	case uc.Role == "":
		return MissingRole
	case uc.Campus == "":
		return MissingCampus
	}
	return MissingNone
}
