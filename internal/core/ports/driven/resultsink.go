package driven

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// ResultSink receives one record per analysed document.
// Sinks are append-only; existing records are never rewritten.
type ResultSink interface {
	// Append writes a record. A failure here is fatal to the batch.
	Append(ctx context.Context, result domain.AnalysisResult) error

	// Location describes where records go, for the completion notice.
	Location() string
}
