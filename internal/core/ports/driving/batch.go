package driving

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// BatchRunner runs one saturation analysis batch over the input directory.
type BatchRunner interface {
	// Run iterates the discovered documents, analysing the selected ones.
	// Per-document and per-fragment failures are absorbed and counted in the
	// report; the returned error is reserved for fatal failures.
	Run(ctx context.Context) (*domain.BatchReport, error)
}
