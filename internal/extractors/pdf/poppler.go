package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"code.sajari.com/docconv"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// ErrPopplerNotFound indicates pdftotext is not installed.
var ErrPopplerNotFound = fmt.Errorf("%w: pdftotext not found in PATH", domain.ErrToolNotFound)

// Poppler reads PDFs through docconv, which drives poppler's pdftotext.
type Poppler struct {
	lookPath func(string) (string, error)
}

// NewPoppler creates a poppler engine.
func NewPoppler() *Poppler {
	return &Poppler{lookPath: exec.LookPath}
}

// Name returns the engine name.
func (p *Poppler) Name() string {
	return "pdftotext"
}

// Text converts the whole document.
func (p *Poppler) Text(_ context.Context, path string) (string, error) {
	if _, err := p.lookPath("pdftotext"); err != nil {
		return "", ErrPopplerNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertPDF(f)
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return text, nil
}

// PopplerInstallInstructions returns how to install pdftotext.
func PopplerInstallInstructions() string {
	return `The pdftotext engine needs poppler.

  macOS:         brew install poppler
  Ubuntu/Debian: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils

Or set extract.pdf_engine = "mupdf" to use the built-in engine.`
}
