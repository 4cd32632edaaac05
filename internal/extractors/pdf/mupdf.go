package pdf

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/ase-lab/saturate/internal/logger"
)

// DefaultRenderDPI is the page resolution used for OCR.
const DefaultRenderDPI = 300

// MuPDF reads and renders PDFs with the MuPDF library.
type MuPDF struct {
	dpi float64
}

// NewMuPDF creates a MuPDF engine. A non-positive dpi uses DefaultRenderDPI.
func NewMuPDF(dpi float64) *MuPDF {
	if dpi <= 0 {
		dpi = DefaultRenderDPI
	}
	return &MuPDF{dpi: dpi}
}

// Name returns the engine name.
func (m *MuPDF) Name() string {
	return "mupdf"
}

// Text concatenates the text of every page.
// Pages that fail to decode are logged and skipped.
func (m *MuPDF) Text(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.Text(i)
		if err != nil {
			logger.Debug("mupdf: page %d of %s: %v", i+1, path, err)
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// RenderPages rasterises each page at the configured resolution.
func (m *MuPDF) RenderPages(ctx context.Context, path string, fn func(page int, img image.Image) error) error {
	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImageDPI(i, m.dpi)
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		if err := fn(i, img); err != nil {
			return err
		}
	}
	return nil
}
