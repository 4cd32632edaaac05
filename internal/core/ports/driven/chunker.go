package driven

import "github.com/ase-lab/saturate/internal/core/domain"

// Chunker splits normalised text into ordered fragments.
// Chunking is pure: no I/O, no failure mode.
type Chunker interface {
	// Chunk returns the fragments of text in original paragraph order.
	Chunk(text string) []domain.Fragment

	// MaxLength returns the fragment length bound.
	MaxLength() int
}
