package memory

import (
	"context"
	"sync"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// History lives only as long as the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.SessionItem
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]domain.SessionItem),
	}
}

// Load returns a copy of the session's items in insertion order.
func (s *SessionStore) Load(_ context.Context, sessionID string) ([]domain.SessionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.sessions[sessionID]
	out := make([]domain.SessionItem, len(items))
	copy(out, items)
	return out, nil
}

// Append adds items to the end of the session's history.
func (s *SessionStore) Append(_ context.Context, sessionID string, items ...domain.SessionItem) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], items...)
	return nil
}
