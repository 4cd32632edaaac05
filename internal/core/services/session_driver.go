package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// SessionDriver feeds fragments, strictly in order, through one continuous
// analysis session.
//
// Fragment N is submitted only after fragment N-1's exchange has resolved,
// and the session is updated between the two. A failed agent call is
// recorded as a failed outcome and the driver moves on to the next fragment.
type SessionDriver struct {
	agent driven.Agent
	store driven.SessionStore
	now   func() time.Time
}

// NewSessionDriver creates a new session driver.
func NewSessionDriver(agent driven.Agent, store driven.SessionStore) *SessionDriver {
	return &SessionDriver{
		agent: agent,
		store: store,
		now:   time.Now,
	}
}

// Open loads the persisted history for sessionID and returns the session
// object that must be threaded through every Process call of the run.
func (d *SessionDriver) Open(ctx context.Context, sessionID string) (*domain.Session, error) {
	items, err := d.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	logger.Info("Session %s opened with %d prior items", sessionID, len(items))
	return domain.NewSession(sessionID, items), nil
}

// Process runs every fragment of doc through the agent against session.
//
// The returned error is reserved for fatal conditions: the caller's context
// ending, or the session history failing to persist. Agent failures never
// surface here; they appear as FragmentFailed outcomes.
func (d *SessionDriver) Process(
	ctx context.Context,
	session *domain.Session,
	doc domain.Document,
	fragments []domain.Fragment,
) (*domain.DocumentAnalysis, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", domain.ErrInvalidInput)
	}

	analysis := &domain.DocumentAnalysis{
		Document: doc,
		Outcomes: make([]domain.FragmentOutcome, 0, len(fragments)),
	}

	for i, fragment := range fragments {
		if err := ctx.Err(); err != nil {
			return analysis, fmt.Errorf("process %s: %w", doc.Name(), err)
		}

		output, err := d.agent.Run(ctx, session, fragment.Content)
		if err != nil {
			// The caller's own cancellation is not a fragment failure.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return analysis, fmt.Errorf("process %s: %w", doc.Name(), ctxErr)
			}
			logger.Warn("Error processing fragment %d/%d of %s: %v", i+1, len(fragments), doc.Name(), err)
			analysis.Outcomes = append(analysis.Outcomes, domain.FragmentOutcome{
				Position: fragment.Position,
				Status:   domain.FragmentFailed,
				Err:      err,
			})
			continue
		}

		if err := d.record(ctx, session, fragment.Content, output); err != nil {
			return analysis, err
		}

		logger.Debug("Fragment %d/%d of %s analysed (%d chars)", i+1, len(fragments), doc.Name(), len(output))
		analysis.Outcomes = append(analysis.Outcomes, domain.FragmentOutcome{
			Position: fragment.Position,
			Status:   domain.FragmentOK,
			Output:   output,
		})
	}

	return analysis, nil
}

// record persists the exchange, then applies it to the in-memory session,
// so the two never disagree.
func (d *SessionDriver) record(ctx context.Context, session *domain.Session, input, output string) error {
	now := d.now()
	items := []domain.SessionItem{
		{ID: uuid.New().String(), Role: domain.RoleUser, Content: input, CreatedAt: now},
		{ID: uuid.New().String(), Role: domain.RoleAssistant, Content: output, CreatedAt: now},
	}

	if err := d.store.Append(ctx, session.ID, items...); err != nil {
		return fmt.Errorf("%w: session %s: %w", domain.ErrSessionPersist, session.ID, err)
	}
	session.Record(items...)
	return nil
}
