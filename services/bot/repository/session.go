package repository

import (
	"context"
	"sync"

	"github.com/kyudan/motemovil/internal/pkg/models"
)

// MemorySessionStore keeps in-flight conversation sessions in process memory.
// It is the default backing for single-instance deployments; a restart drops
// in-flight conversations by design.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*models.Session
}

// NewMemorySessionStore creates an empty in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[int64]*models.Session),
	}
}

// Get returns the session for a user, or nil when none is in flight.
func (s *MemorySessionStore) Get(ctx context.Context, userID int64) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}

	copied := *session
	copied.Fields = append([]models.CollectedField(nil), session.Fields...)
	return &copied, nil
}

// Put stores or replaces the session for a user
func (s *MemorySessionStore) Put(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	copied.Fields = append([]models.CollectedField(nil), session.Fields...)
	s.sessions[session.UserID] = &copied
	return nil
}

// Delete removes the session for a user
func (s *MemorySessionStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}
