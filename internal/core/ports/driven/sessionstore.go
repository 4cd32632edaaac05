package driven

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// SessionStore persists session history keyed by session ID.
// Repeated runs with the same ID append to, rather than replace, history.
type SessionStore interface {
	// Load returns the stored items for a session in insertion order.
	// An unknown ID returns an empty history, not an error.
	Load(ctx context.Context, sessionID string) ([]domain.SessionItem, error)

	// Append stores items at the end of a session's history atomically.
	Append(ctx context.Context, sessionID string, items ...domain.SessionItem) error
}
