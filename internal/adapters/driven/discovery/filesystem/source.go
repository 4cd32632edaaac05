// Package filesystem discovers input documents in a local folder.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source lists allow-listed files directly inside one directory.
// Subdirectories are not descended into.
type Source struct {
	dir string
}

// NewSource creates a source for dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Discover returns the directory's supported documents sorted by name.
func (s *Source) Discover(ctx context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read input directory: %w: %w", domain.ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		doc, ok := domain.NewDocument(filepath.Join(s.dir, entry.Name()))
		if !ok {
			logger.Debug("Ignoring %s", entry.Name())
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Location returns the input directory.
func (s *Source) Location() string {
	return s.dir
}
