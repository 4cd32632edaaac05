package driven

import "github.com/ase-lab/saturate/internal/core/domain"

// ProgressReporter displays batch progress to the operator.
type ProgressReporter interface {
	// Start announces the number of documents to iterate.
	Start(total int)

	// Advance marks one document as handled, analysed or not.
	Advance(doc domain.Document)

	// Finish closes the display.
	Finish()
}
