package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load returns a session's items in insertion order.
func (s *sessionStore) Load(ctx context.Context, sessionID string) ([]domain.SessionItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, role, content, created_at
		FROM session_items
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session items: %w", err)
	}
	defer rows.Close()

	var items []domain.SessionItem
	for rows.Next() {
		var item domain.SessionItem
		var role string
		var createdAt sql.NullTime
		if err := rows.Scan(&item.ID, &role, &item.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session item: %w", err)
		}
		item.Role = domain.Role(role)
		if createdAt.Valid {
			item.CreatedAt = createdAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session items: %w", err)
	}

	return items, nil
}

// Append stores items at the end of the session in a single transaction.
func (s *sessionStore) Append(ctx context.Context, sessionID string, items ...domain.SessionItem) error {
	if sessionID == "" {
		return fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}
	if len(items) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (session_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET updated_at = excluded.updated_at
	`, sessionID, now, now)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_items (id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.ExecContext(ctx, item.ID, sessionID, string(item.Role), item.Content, createdAt.UTC()); err != nil {
			return fmt.Errorf("inserting session item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session items: %w", err)
	}
	return nil
}
