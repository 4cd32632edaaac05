package services

import (
	"context"
	"fmt"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// TextSource normalises heterogeneous documents into plain text by
// dispatching to the extractor registered for the document's type.
//
// Extract never fails outward. Any extractor failure, including a panic
// inside an engine binding, is logged and returned as a tagged result
// that the caller treats as "skip this document".
type TextSource struct {
	extractors map[domain.DocumentType]driven.Extractor
}

// NewTextSource creates a text source from extractors.
// When two extractors claim the same type, the later one wins.
func NewTextSource(extractors ...driven.Extractor) *TextSource {
	ts := &TextSource{
		extractors: make(map[domain.DocumentType]driven.Extractor),
	}
	for _, e := range extractors {
		ts.Register(e)
	}
	return ts
}

// Register adds an extractor for every type it supports.
func (ts *TextSource) Register(e driven.Extractor) {
	for _, t := range e.SupportedTypes() {
		ts.extractors[t] = e
	}
}

// Extract returns the document's text. Single attempt, no retries.
func (ts *TextSource) Extract(ctx context.Context, doc domain.Document) (result domain.ExtractionResult) {
	extractor, ok := ts.extractors[doc.Type]
	if !ok {
		err := fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, doc.Type)
		logger.Warn("Skipping %s: %v", doc.Name(), err)
		return domain.ExtractionFailure(err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: extractor panic: %v", domain.ErrExtractionFailed, r)
			logger.Warn("Error reading %s %s: %v", doc.Type, doc.Path, err)
			result = domain.ExtractionFailure(err)
		}
	}()

	result = extractor.Extract(ctx, doc.Path)
	switch result.Status {
	case domain.ExtractionFailed:
		logger.Warn("Error reading %s %s: %v", doc.Type, doc.Path, result.Err)
	case domain.ExtractionEmpty:
		logger.Debug("No text in %s", doc.Path)
	case domain.ExtractionOK:
		logger.Debug("Extracted %d bytes from %s", len(result.Text), doc.Path)
	}
	return result
}
