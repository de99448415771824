package services

import (
	"context"
	"sync"
	"time"

	"propalyze/models"
)

type SearchState string

const (
	SEARCH_STATE_IDLE     SearchState = "idle"
	SEARCH_STATE_LOADING  SearchState = "loading"
	SEARCH_STATE_SUCCESS  SearchState = "success"
	SEARCH_STATE_FALLBACK SearchState = "fallback"
)

// SessionKey identifies one results page of one visitor. Searches only
// replace each other within the same page.
type SessionKey struct {
	Visitor string
	Page    string
}

// SessionSnapshot is a copy of a session's visible state.
type SessionSnapshot struct {
	Page      string                `json:"page"`
	State     SearchState           `json:"state"`
	Payload   *models.SearchPayload `json:"payload,omitempty"`
	Result    *SearchResult         `json:"result,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// SearchSession holds the search state of one results page. Only the most recent
// Search call may commit its result.
type SearchSession struct {
	mu       sync.Mutex
	key      SessionKey
	fetcher  Fetcher
	current  *CancelToken
	state    SearchState
	payload  *models.SearchPayload
	result   *SearchResult
	updated  time.Time
	lastSeen time.Time
}

func NewSearchSession(key SessionKey, fetcher Fetcher) *SearchSession {
	now := time.Now()
	return &SearchSession{
		key:      key,
		fetcher:  fetcher,
		state:    SEARCH_STATE_IDLE,
		updated:  now,
		lastSeen: now,
	}
}

func (s *SearchSession) Key() SessionKey {
	return s.key
}

// Search cancels any outstanding attempt, runs a new one and commits it if
// no newer attempt started meanwhile. A replaced attempt gets ErrSuperseded.
func (s *SearchSession) Search(ctx context.Context, payload models.SearchPayload, cookies string) (*SearchResult, error) {
	token := s.begin(ctx, payload)
	defer token.release()

	result, err := s.fetcher.Fetch(token.Context(), token, payload, cookies)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != token || token.Cancelled() {
		return nil, ErrSuperseded
	}
	s.current = nil
	s.updated = time.Now()
	s.lastSeen = s.updated

	if err != nil {
		// the visitor gave up; nothing was committed
		s.state = SEARCH_STATE_IDLE
		return nil, err
	}

	s.result = result
	if result.Fallback {
		s.state = SEARCH_STATE_FALLBACK
	} else {
		s.state = SEARCH_STATE_SUCCESS
	}
	return result, nil
}

func (s *SearchSession) begin(ctx context.Context, payload models.SearchPayload) *CancelToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Cancel()
	}
	token := NewCancelToken(ctx)
	s.current = token
	s.state = SEARCH_STATE_LOADING
	s.payload = &payload
	s.result = nil
	s.updated = time.Now()
	s.lastSeen = s.updated
	return token
}

// Snapshot returns the state as of now.
func (s *SearchSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		Page:      s.key.Page,
		State:     s.state,
		Payload:   s.payload,
		Result:    s.result,
		UpdatedAt: s.updated,
	}
}

func (s *SearchSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *SearchSession) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.current != nil
}
