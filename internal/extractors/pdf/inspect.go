package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFCPU inspects PDFs with pdfcpu.
type PDFCPU struct{}

// PageCount returns the number of pages pdfcpu reads from the file.
func (PDFCPU) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}
