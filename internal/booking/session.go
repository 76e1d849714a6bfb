package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

// ErrSessionNotFound is returned for ids the store does not know.
var ErrSessionNotFound = errors.New("booking: session not found")

// Session is one visitor's booking form. All fields are guarded by mu and
// only the owning Controller mutates them.
type Session struct {
	mu sync.Mutex

	id       string
	draft    Draft
	feedback Feedback
	history  []Phase
	loading  bool
	dialog   i18n.Key

	submissionID string
	pendingReady bool
	readyAt      time.Time
	loadingUntil time.Time
	lastSeen     time.Time
}

// SessionStore keeps sessions in memory and forgets idle ones after ttl.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    clock.Clock
}

func NewSessionStore(ttl time.Duration, clk clock.Clock) *SessionStore {
	if clk == nil {
		clk = clock.New()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		clock:    clk,
	}
}

// Get returns the session for id, creating it with newDraft when absent.
func (s *SessionStore) Get(id string, newDraft func() Draft) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{id: id, draft: newDraft()}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess
}

// Lookup returns an existing session without creating one.
func (s *SessionStore) Lookup(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.clock.Now()
	return sess, nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.clock.Now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
