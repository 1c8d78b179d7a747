package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoreConfig configures the session store.
type StoreConfig struct {
	MaxHistory  int           // History entries kept per session
	IdleTimeout time.Duration // Sessions idle longer than this are evicted
}

// Store keeps all live sessions in memory, keyed by session ID.
// Idle sessions are evicted by EvictIdle, driven by a background job.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	config   StoreConfig
	onEvict  func(sessionID string) // Optional callback on idle eviction
}

// NewStore creates a session store.
func NewStore(cfg StoreConfig) *Store {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 12
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	return &Store{
		sessions: make(map[string]*Session),
		config:   cfg,
	}
}

// OnEvict sets a callback invoked for each idle-evicted session.
func (st *Store) OnEvict(fn func(sessionID string)) {
	st.onEvict = fn
}

// Start creates a new session for the user and returns it.
func (st *Store) Start(userID string) *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		CreatedAt:  now,
		LastActive: now,
		maxHistory: st.config.MaxHistory,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID, or false if not found.
func (st *Store) Get(sessionID string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	return s, ok
}

// GetOrStart returns the existing session or starts a new one for the
// user when the ID is unknown or empty.
func (st *Store) GetOrStart(sessionID, userID string) *Session {
	if sessionID != "" {
		if s, ok := st.Get(sessionID); ok {
			return s
		}
	}
	return st.Start(userID)
}

// End removes the session. Returns true if it existed.
func (st *Store) End(sessionID string) bool {
	st.mu.Lock()
	_, ok := st.sessions[sessionID]
	delete(st.sessions, sessionID)
	st.mu.Unlock()
	return ok
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle removes sessions idle longer than the configured timeout
// and returns how many were evicted.
//
// Idle checks take each session's own lock, so a session in the middle
// of a turn is never considered idle.
func (st *Store) EvictIdle() int {
	cutoff := time.Now().Add(-st.config.IdleTimeout)

	st.mu.RLock()
	candidates := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		candidates = append(candidates, s)
	}
	st.mu.RUnlock()

	var evicted []string
	for _, s := range candidates {
		s.mu.Lock()
		idle := s.LastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			evicted = append(evicted, s.ID)
		}
	}

	st.mu.Lock()
	for _, id := range evicted {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if st.onEvict != nil {
		for _, id := range evicted {
			st.onEvict(id)
		}
	}
	return len(evicted)
}
