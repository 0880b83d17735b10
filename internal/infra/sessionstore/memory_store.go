package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/chore-planner/internal/domain/auth"
)

// MemoryStore keeps sessions in process memory for tests/dev.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

type entry struct {
	userID    int64
	expiresAt time.Time
}

// NewMemoryStore constructs an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Put records a session with its TTL.
func (s *MemoryStore) Put(_ context.Context, sessionID string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = entry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Active reports whether the session exists and has not expired.
func (s *MemoryStore) Active(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if s.now().After(record.expiresAt) {
		delete(s.sessions, sessionID)
		return false, nil
	}
	return true, nil
}

// Revoke deletes the session record.
func (s *MemoryStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ auth.SessionStore = (*MemoryStore)(nil)
