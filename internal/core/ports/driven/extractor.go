package driven

import (
	"context"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// Extractor turns documents of one type into plain text.
// Each extractor handles specific document types (e.g., PDF, image).
type Extractor interface {
	// SupportedTypes returns the document types this extractor handles.
	SupportedTypes() []domain.DocumentType

	// Extract reads the file at path and returns its text.
	// Implementations never return failures outward: corrupt files, missing
	// tools and engine errors are reported as domain.ExtractionFailed.
	Extract(ctx context.Context, path string) domain.ExtractionResult
}
