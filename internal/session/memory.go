package session

import (
	"context"
	"github.com/google/uuid"
	"sync"
	"time"
)

type entry struct {
	userID    string
	expiresAt time.Time
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)
	s.sessions[id] = entry{userID: userID, expiresAt: expiresAt}

	return id, expiresAt, nil
}

func (s *MemoryStore) UserID(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok || !s.now().Before(e.expiresAt) {
		return "", ErrNotFound
	}

	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)

	return nil
}

// PurgeExpired drops expired sessions and reports how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}
