package driven

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// Agent runs the qualitative analysis for one fragment.
//
// The session carries every prior exchange; the agent reads it but never
// mutates it. Recording the exchange is the caller's job, done only after
// Run resolves, so two calls against one session are never in flight together.
type Agent interface {
	// Run submits input with the session's context and returns the agent's output.
	Run(ctx context.Context, session *domain.Session, input string) (string, error)

	// Name returns the agent name for logging.
	Name() string
}
