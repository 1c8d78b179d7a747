// Package chat orchestrates a conversation turn: context extraction,
// clarification, retrieval, and answer composition over per-session
// state.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/tumchatbot/tum-chatbot-go/internal/analytics"
	"github.com/tumchatbot/tum-chatbot-go/internal/clarify"
	"github.com/tumchatbot/tum-chatbot-go/internal/compose"
	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
	"github.com/tumchatbot/tum-chatbot-go/internal/extract"
	"github.com/tumchatbot/tum-chatbot-go/internal/logger"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
	"github.com/tumchatbot/tum-chatbot-go/internal/search"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

const (
	defaultTopK       = 5
	historyWindowSize = 6 // prompt context, not the storage cap
)

// Deps are the engine's collaborators. Recorder, Analytics, Metrics
// and ChatLog are optional.
type Deps struct {
	Ranker      *search.Ranker
	Sessions    *session.Store
	Extractor   *extract.Extractor
	Clarifier   *clarify.Engine
	Composer    *compose.Composer
	Recorder    *analytics.Recorder
	Analytics   *analytics.Store
	Metrics     *metrics.Metrics
	ChatLog     *logger.ChatSessionLogger
	TopK        int
	TurnTimeout time.Duration // Whole-turn deadline; defaults to config.ChatTurnProcessing
}

// Engine is the chat entry point behind the HTTP surface.
type Engine struct {
	deps        Deps
	topK        int
	turnTimeout time.Duration
}

// New creates an Engine and wires session eviction into the analytics
// session bookkeeping.
func New(d Deps) *Engine {
	if d.TopK <= 0 {
		d.TopK = defaultTopK
	}
	if d.TurnTimeout <= 0 {
		d.TurnTimeout = config.ChatTurnProcessing
	}
	e := &Engine{deps: d, topK: d.TopK, turnTimeout: d.TurnTimeout}
	if d.Analytics != nil {
		d.Sessions.OnEvict(func(sessionID string) {
			if err := d.Analytics.EndSession(context.Background(), sessionID, "", ""); err != nil {
				slog.Warn("failed to close evicted session record", "error", err, "session_id", sessionID)
			}
		})
	}
	return e
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Text      string
	SessionID string
}

// GenerateResponse runs a full turn for the query. The session is
// locked for the whole read-modify-write sequence, and no session
// mutation is committed when the request context is cancelled
// mid-flight.
func (e *Engine) GenerateResponse(ctx context.Context, query, sessionID, userID string) Reply {
	start := time.Now()

	// Cap the whole turn so a stalled oracle cannot hold the session
	// lock past the HTTP write deadline.
	ctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	sess, created := e.getOrStart(ctx, sessionID, userID)
	sess.Lock()
	defer sess.Unlock()
	sess.Touch()

	if created {
		slog.InfoContext(ctx, "session started", "session_id", sess.ID)
	}

	// Stage all mutations on local copies; they are committed to the
	// session only when the turn finishes with a live context.
	uc := sess.Context
	pending := sess.Pending

	extracted := e.deps.Extractor.Extract(ctx, query)
	contextUpdated := false
	if extracted.Role != "" && session.IsValidRole(extracted.Role) && uc.Role != extracted.Role {
		uc.Role = extracted.Role
		contextUpdated = true
		e.recordContextUpdate("role")
	}
	if extracted.Campus != "" && session.IsValidCampus(extracted.Campus) && uc.Campus != extracted.Campus {
		uc.Campus = extracted.Campus
		contextUpdated = true
		e.recordContextUpdate("campus")
	}

	// Resume the deferred question once the missing context arrives.
	resuming := false
	if contextUpdated && pending.AwaitingContext {
		slog.InfoContext(ctx, "resuming pending question", "original_query", pending.OriginalQuery)
		query = pending.OriginalQuery
		pending = session.Pending{}
		resuming = true
		if e.deps.Metrics != nil {
			e.deps.Metrics.RecordPendingResumed()
		}
	}

	// A turn that just delivered context never re-triggers clarification.
	if !contextUpdated {
		if missing := e.deps.Clarifier.NeedsInfo(ctx, query, uc); missing != clarify.MissingNone {
			answer := missing.Prompt()
			pending = session.Pending{OriginalQuery: query, AwaitingContext: true}
			if e.deps.Metrics != nil {
				e.deps.Metrics.RecordClarification(string(missing))
			}
			return e.finish(ctx, sess, uc, pending, query, answer, "clarification", nil, start, userID)
		}
	}

	results := e.deps.Ranker.Rank(query, search.UserContext{Role: uc.Role, Campus: uc.Campus}, e.topK)
	if e.deps.Metrics != nil {
		e.deps.Metrics.RecordSearchResults(len(results))
	}

	// History is the window before this turn; the current query enters
	// the prompt through its own "Current question" line, not the
	// transcript.
	answer, degraded := e.deps.Composer.Compose(ctx, compose.Input{
		Query:       query,
		UserContext: uc,
		Documents:   results,
		History:     sess.RecentHistory(historyWindowSize),
		Resuming:    resuming,
	})

	outcome := "answered"
	if degraded {
		outcome = "error"
	}
	return e.finish(ctx, sess, uc, pending, query, answer, outcome, results, start, userID)
}

// finish commits staged session state, records analytics, and builds
// the reply. Cancelled requests return the answer without committing.
func (e *Engine) finish(ctx context.Context, sess *session.Session, uc session.Context, pending session.Pending, query, answer, outcome string, results []search.Result, start time.Time, userID string) Reply {
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "request cancelled mid-turn, session state not committed")
		if e.deps.Metrics != nil {
			e.deps.Metrics.RecordChatTurn("error", elapsed.Seconds())
		}
		return Reply{Text: compose.FallbackMessage, SessionID: sess.ID}
	}

	sess.SetRole(uc.Role)
	sess.SetCampus(uc.Campus)
	sess.Pending = pending
	sess.AppendExchange(query, answer)
	sess.Touch()

	if e.deps.Metrics != nil {
		e.deps.Metrics.RecordChatTurn(outcome, elapsed.Seconds())
	}
	if e.deps.Recorder != nil && outcome == "answered" {
		e.deps.Recorder.Record(analytics.Interaction{
			Timestamp:    start,
			UserID:       userID,
			SessionID:    sess.ID,
			Query:        query,
			Response:     answer,
			SearchMethod: "lexical",
			ResultCount:  len(results),
			ResponseTime: elapsed.Seconds(),
			UserRole:     uc.Role,
			UserCampus:   uc.Campus,
		})
	}
	e.deps.ChatLog.LogExchange(userID, sess.ID, query, answer, uc.Role, uc.Campus)

	return Reply{Text: answer, SessionID: sess.ID}
}

// getOrStart resolves the session, creating one when the ID is empty
// or unknown, and reports whether it was created.
func (e *Engine) getOrStart(ctx context.Context, sessionID, userID string) (*session.Session, bool) {
	if sessionID != "" {
		if s, ok := e.deps.Sessions.Get(sessionID); ok {
			return s, false
		}
	}
	s := e.deps.Sessions.Start(userID)
	if e.deps.Analytics != nil {
		if err := e.deps.Analytics.StartSession(ctx, s.ID, userID); err != nil {
			slog.WarnContext(ctx, "failed to record session start", "error", err)
		}
	}
	return s, true
}

// StartSession creates a session explicitly and returns its ID.
func (e *Engine) StartSession(ctx context.Context, userID string) string {
	s, _ := e.getOrStart(ctx, "", userID)
	return s.ID
}

// EndSession removes a session. Returns ErrSessionNotFound when the
// ID is unknown.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	var role, campus string
	if s, ok := e.deps.Sessions.Get(sessionID); ok {
		info := s.Snapshot()
		role, campus = info.Role, info.Campus
	}

	if !e.deps.Sessions.End(sessionID) {
		return apperrors.ErrSessionNotFound
	}
	if e.deps.Analytics != nil {
		if err := e.deps.Analytics.EndSession(ctx, sessionID, role, campus); err != nil {
			slog.WarnContext(ctx, "failed to record session end", "error", err)
		}
	}
	return nil
}

// GetSessionInfo returns a snapshot of the session's public state.
func (e *Engine) GetSessionInfo(sessionID string) (session.Info, error) {
	s, ok := e.deps.Sessions.Get(sessionID)
	if !ok {
		return session.Info{}, apperrors.ErrSessionNotFound
	}
	return s.Snapshot(), nil
}

// SessionCount reports live sessions for the metrics gauge.
func (e *Engine) SessionCount() int {
	return e.deps.Sessions.Count()
}

func (e *Engine) recordContextUpdate(field string) {
	if e.deps.Metrics != nil {
		e.deps.Metrics.RecordContextUpdate(field)
	}
}
