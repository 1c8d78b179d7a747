// Package session holds per-conversation state: the known user context
// (role and campus), bounded conversation history, and the pending
// clarification question protocol.
package session

import (
	"strings"
	"sync"
	"time"
)

// Role values the extractor recognizes.
var validRoles = map[string]bool{
	"student": true, "employee": true, "professor": true, "lecturer": true,
	"visitor": true, "phd": true, "postdoc": true,
}

// Campus values the extractor recognizes.
var validCampuses = map[string]bool{
	"Munich": true, "Garching": true, "Heilbronn": true, "Weihenstephan": true,
}

// IsValidRole reports whether role is a recognized role value.
// Roles are matched lowercased.
func IsValidRole(role string) bool {
	return validRoles[strings.ToLower(role)]
}

// IsValidCampus reports whether campus is a recognized campus name.
// Campuses are canonical capitalized names.
func IsValidCampus(campus string) bool {
	return validCampuses[campus]
}

// Context is the user context accumulated over a conversation.
// Fields are monotonic: once set they are updated, never cleared.
type Context struct {
	Role   string
	Campus string
}

// Complete reports whether both role and campus are known.
func (c Context) Complete() bool {
	return c.Role != "" && c.Campus != ""
}

// Entry is one message in the conversation history.
type Entry struct {
	Role      string // "user" or "assistant"
	Content   string
	Timestamp time.Time
}

// Pending tracks a query deferred behind a clarification question.
type Pending struct {
	OriginalQuery   string
	AwaitingContext bool
}

// Session is the full state of one conversation.
// Callers must hold Lock() across a whole chat turn so concurrent
// requests on the same session serialize.
type Session struct {
	mu sync.Mutex

	ID         string
	UserID     string
	Context    Context
	History    []Entry
	Pending    Pending
	CreatedAt  time.Time
	LastActive time.Time

	maxHistory int
}

// Lock acquires the per-session mutex for the duration of a turn.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch updates the last-active timestamp.
// Must be called with the session locked.
func (s *Session) Touch() {
	s.LastActive = time.Now()
}

// SetRole updates the known role if the value is non-empty.
// Returns true if the role changed. Must be called with the session locked.
func (s *Session) SetRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || !validRoles[role] || s.Context.Role == role {
		return false
	}
	s.Context.Role = role
	return true
}

// SetCampus updates the known campus if the value is non-empty.
// Returns true if the campus changed. Must be called with the session locked.
func (s *Session) SetCampus(campus string) bool {
	campus = strings.TrimSpace(campus)
	if campus == "" || !validCampuses[campus] || s.Context.Campus == campus {
		return false
	}
	s.Context.Campus = campus
	return true
}

// AppendExchange records a user query and the assistant's reply,
// evicting the oldest entries beyond the history cap.
// Must be called with the session locked.
func (s *Session) AppendExchange(userMsg, assistantMsg string) {
	now := time.Now()
	s.History = append(s.History,
		Entry{Role: "user", Content: userMsg, Timestamp: now},
		Entry{Role: "assistant", Content: assistantMsg, Timestamp: now},
	)
	if excess := len(s.History) - s.maxHistory; excess > 0 {
		s.History = s.History[excess:]
	}
}

// RecentHistory returns up to n most recent history entries.
// Must be called with the session locked.
func (s *Session) RecentHistory(n int) []Entry {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	out := make([]Entry, n)
	copy(out, s.History[len(s.History)-n:])
	return out
}

// SetPending stores the original query awaiting clarification.
// Must be called with the session locked.
func (s *Session) SetPending(originalQuery string) {
	s.Pending = Pending{OriginalQuery: originalQuery, AwaitingContext: true}
}

// TakePending clears and returns the pending original query, if any.
// Must be called with the session locked.
func (s *Session) TakePending() (string, bool) {
	if !s.Pending.AwaitingContext {
		return "", false
	}
	query := s.Pending.OriginalQuery
	s.Pending = Pending{}
	return query, true
}

// Info is a read-only snapshot of session state for the API surface.
type Info struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role,omitempty"`
	Campus       string    `json:"campus,omitempty"`
	HistoryCount int       `json:"history_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActive   time.Time `json:"last_active"`
}

// Snapshot returns a consistent copy of the session's public state.
func (s *Session) Snapshot() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		SessionID:    s.ID,
		UserID:       s.UserID,
		Role:         s.Context.Role,
		Campus:       s.Context.Campus,
		HistoryCount: len(s.History),
		CreatedAt:    s.CreatedAt,
		LastActive:   s.LastActive,
	}
}
