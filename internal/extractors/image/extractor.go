// Package image extracts text from raster scans through OCR.
package image

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for DecodeConfig
	"os"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Recogniser reads text from an image file.
type Recogniser interface {
	RecogniseFile(ctx context.Context, path string) (string, error)
}

// Extractor OCRs PNG scans.
type Extractor struct {
	ocr Recogniser
}

// New creates an image extractor backed by ocr.
func New(ocr Recogniser) *Extractor {
	return &Extractor{ocr: ocr}
}

// SupportedTypes returns the image document type.
func (e *Extractor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeImage}
}

// Extract checks the file decodes as an image, then OCRs it.
func (e *Extractor) Extract(ctx context.Context, path string) domain.ExtractionResult {
	cfg, format, err := decodeConfig(path)
	if err != nil {
		return domain.ExtractionFailure(fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err))
	}

	text, err := e.ocr.RecogniseFile(ctx, path)
	if err != nil {
		return domain.ExtractionFailure(fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err))
	}

	return domain.Extracted(text, map[string]any{
		"format": format,
		"width":  cfg.Width,
		"height": cfg.Height,
		"engine": "tesseract",
	})
}

func decodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, format, nil
}
