// Package pdf extracts text from PDF files.
//
// Text comes from a pluggable engine: MuPDF through go-fitz by default, or
// poppler's pdftotext through docconv. pdfcpu inspects the file first. When
// a PDF has no text layer (a scanned report), its pages are rendered and
// passed through OCR.
package pdf

import (
	"context"
	"image"
)

// TextEngine reads the embedded text layer of a PDF.
type TextEngine interface {
	// Name identifies the engine in metadata and logs.
	Name() string

	// Text returns the text of every page, in page order.
	Text(ctx context.Context, path string) (string, error)
}

// PageRenderer rasterises PDF pages for OCR.
type PageRenderer interface {
	// RenderPages calls fn with each page image in order, stopping at the first error.
	RenderPages(ctx context.Context, path string, fn func(page int, img image.Image) error) error
}

// Recogniser reads text from a rendered page.
type Recogniser interface {
	RecogniseImage(ctx context.Context, img image.Image) (string, error)
}

// Inspector reports structural facts about a PDF before extraction.
type Inspector interface {
	PageCount(path string) (int, error)
}
