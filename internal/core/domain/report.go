package domain

// BatchReport summarises one batch run.
type BatchReport struct {
	RunID string

	// Discovered is the number of documents found in the input directory.
	Discovered int

	// Selected is the number of documents that passed the selection draw.
	Selected int

	// SkippedEmpty is the number of selected documents with no extractable text,
	// extraction failures included.
	SkippedEmpty int

	// Analysed is the number of documents written to the result sink.
	Analysed int

	// Fragments is the number of fragments submitted to the agent.
	Fragments int

	// FailedFragments is the number of fragments whose agent call failed.
	FailedFragments int
}

// Empty returns true if no documents were discovered.
func (r *BatchReport) Empty() bool {
	return r.Discovered == 0
}

// SkippedBySelection returns the number of documents the selection draw left out.
func (r *BatchReport) SkippedBySelection() int {
	return r.Discovered - r.Selected
}
