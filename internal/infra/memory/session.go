package infra_memory

import (
	"context"
	"sync"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

type sessionEntry struct {
	session   model.Session
	expiresAt time.Time
}

// SessionStore is the process local replacement for the redis session cache.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		entries: make(map[string]sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load returns the zero session for unknown or expired tokens.
func (s *SessionStore) Load(_ context.Context, token string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return model.Session{}, nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, token)
		return model.Session{}, nil
	}
	return e.session, nil
}

func (s *SessionStore) Save(_ context.Context, token string, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = sessionEntry{
		session:   sess,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
	return nil
}
