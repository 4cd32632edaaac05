package pdf

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor pulls text out of PDF documents.
type Extractor struct {
	engine    TextEngine
	inspector Inspector
	renderer  PageRenderer
	ocr       Recogniser
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithInspector runs a structural check before extraction.
func WithInspector(i Inspector) Option {
	return func(e *Extractor) { e.inspector = i }
}

// WithOCRFallback OCRs rendered pages when the text layer is empty.
func WithOCRFallback(renderer PageRenderer, ocr Recogniser) Option {
	return func(e *Extractor) {
		e.renderer = renderer
		e.ocr = ocr
	}
}

// New creates a PDF extractor using engine for the text layer.
func New(engine TextEngine, opts ...Option) *Extractor {
	e := &Extractor{engine: engine}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SupportedTypes returns the PDF document type.
func (e *Extractor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypePDF}
}

// Extract returns the document's trimmed text.
func (e *Extractor) Extract(ctx context.Context, path string) domain.ExtractionResult {
	metadata := map[string]any{"engine": e.engine.Name()}

	if e.inspector != nil {
		pages, err := e.inspector.PageCount(path)
		switch {
		case err != nil:
			// pdfcpu is stricter than the text engines; let them try.
			logger.Debug("pdfcpu could not inspect %s: %v", path, err)
		case pages == 0:
			return domain.Extracted("", metadata)
		default:
			metadata["pages"] = pages
		}
	}

	text, err := e.engine.Text(ctx, path)
	if err != nil {
		return domain.ExtractionFailure(fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, e.engine.Name(), err))
	}
	text = strings.TrimSpace(text)

	if text == "" && e.renderer != nil && e.ocr != nil {
		logger.Debug("No text layer in %s, running OCR", path)
		text, err = e.recognise(ctx, path)
		if err != nil {
			return domain.ExtractionFailure(fmt.Errorf("%w: ocr: %w", domain.ErrExtractionFailed, err))
		}
		metadata["ocr"] = true
	}

	return domain.Extracted(text, metadata)
}

func (e *Extractor) recognise(ctx context.Context, path string) (string, error) {
	var pages []string
	err := e.renderer.RenderPages(ctx, path, func(page int, img image.Image) error {
		text, err := e.ocr.RecogniseImage(ctx, img)
		if err != nil {
			return fmt.Errorf("page %d: %w", page+1, err)
		}
		if text != "" {
			pages = append(pages, text)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
