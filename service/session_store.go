package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"propalyze/logger"
)

// SessionStore keeps one SearchSession per visitor and results page.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[SessionKey]*SearchSession
	fetcher  Fetcher
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewSessionStore(fetcher Fetcher, ttl time.Duration, l *slog.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[SessionKey]*SearchSession),
		fetcher:  fetcher,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Component(l, "SessionStore"),
	}
}

// Get returns the session for the visitor's page, creating it when unknown.
// Either ID is replaced by a fresh UUID when it is not one, so the returned
// session's key may differ from the arguments.
func (st *SessionStore) Get(visitorID, pageID string) *SearchSession {
	key := SessionKey{Visitor: validOrNewID(visitorID), Page: validOrNewID(pageID)}

	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[key]
	if !ok {
		s = NewSearchSession(key, st.fetcher)
		st.sessions[key] = s
		st.logger.Debug("Created search session", "visitor_id", key.Visitor, "page_id", key.Page)
	}
	s.touch(st.now())
	return s
}

// Lookup never creates a session.
func (st *SessionStore) Lookup(visitorID, pageID string) (*SearchSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[SessionKey{Visitor: visitorID, Page: pageID}]
	return s, ok
}

func validOrNewID(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return uuid.NewString()
	}
	return id
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Evict drops sessions idle longer than the TTL. Sessions with a search in flight are kept.
func (st *SessionStore) Evict() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for key, s := range st.sessions {
		lastSeen, busy := s.idleSince()
		if busy || lastSeen.After(cutoff) {
			continue
		}
		delete(st.sessions, key)
		evicted++
	}
	return evicted
}

// StartJanitor evicts idle sessions every interval until ctx is done.
func (st *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go st.runJanitor(ctx, interval)
}

func (st *SessionStore) runJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			st.logger.Info("Session janitor stopped")
			return
		case <-ticker.C:
			if n := st.Evict(); n > 0 {
				st.logger.Info("Evicted idle search sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}
