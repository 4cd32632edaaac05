package driven

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// DocumentSource discovers the documents of one batch run.
type DocumentSource interface {
	// Discover returns documents in a stable order.
	// Files whose type is not allow-listed are left out.
	Discover(ctx context.Context) ([]domain.Document, error)

	// Location describes where documents are discovered.
	Location() string
}
