package domain

import "strings"

// ExtractionStatus tags the outcome of a text extraction.
type ExtractionStatus int

const (
	// ExtractionOK means non-empty text was extracted.
	ExtractionOK ExtractionStatus = iota

	// ExtractionEmpty means the extractor ran but produced no text.
	ExtractionEmpty

	// ExtractionFailed means the extractor hit an error.
	ExtractionFailed
)

// String returns the string representation.
func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionOK:
		return "ok"
	case ExtractionEmpty:
		return "empty"
	case ExtractionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExtractionResult is the value returned by text extraction.
// Extraction never fails outward: errors are carried here and the
// caller skips the document unless Status is ExtractionOK.
type ExtractionResult struct {
	Status ExtractionStatus
	Text   string
	Err    error

	// Metadata carries extractor facts such as page counts.
	Metadata map[string]any
}

// Extracted builds an ExtractionResult from text, tagging blank text as empty.
func Extracted(text string, metadata map[string]any) ExtractionResult {
	if strings.TrimSpace(text) == "" {
		return ExtractionResult{Status: ExtractionEmpty, Metadata: metadata}
	}
	return ExtractionResult{Status: ExtractionOK, Text: text, Metadata: metadata}
}

// ExtractionFailure builds a failed ExtractionResult.
func ExtractionFailure(err error) ExtractionResult {
	return ExtractionResult{Status: ExtractionFailed, Err: err}
}

// OK returns true if the result carries usable text.
func (r ExtractionResult) OK() bool {
	return r.Status == ExtractionOK
}
