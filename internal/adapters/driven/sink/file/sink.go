// Package file provides the append-only results log.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure ResultSink implements the interface.
var _ driven.ResultSink = (*ResultSink)(nil)

// DefaultHeaderLabel prefixes the document name on each record's first line.
const DefaultHeaderLabel = "Documento"

// ResultSink appends one record per analysed document to a text file:
//
//	<label>: <document name>
//	<analysis>
//	<blank line>
//
// The file is opened lazily on the first record, so a run that analyses
// nothing never creates or touches it. Existing content is never rewritten.
type ResultSink struct {
	mu    sync.Mutex
	path  string
	label string
}

// NewResultSink creates a sink writing to path. An empty label uses DefaultHeaderLabel.
func NewResultSink(path, label string) *ResultSink {
	if label == "" {
		label = DefaultHeaderLabel
	}
	return &ResultSink{path: path, label: label}
}

// Append writes a record and syncs it to disk.
func (s *ResultSink) Append(_ context.Context, result domain.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s: %s\n", s.label, result.DocumentName)
	fmt.Fprintf(w, "%s\n\n", result.Text)

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write results file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync results file: %w", err)
	}
	return f.Close()
}

// Location returns the results file path.
func (s *ResultSink) Location() string {
	return s.path
}
