// Package chunker splits document text into paragraph-aligned fragments.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker greedily packs newline-separated paragraphs into fragments whose
// length stays below a bound. A paragraph is never split: one that alone
// reaches the bound becomes its own over-length fragment.
type Chunker struct {
	maxLength int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxLength sets the fragment length bound in characters.
func WithMaxLength(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxLength: domain.DefaultMaxFragmentLength,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MaxLength returns the fragment length bound.
func (c *Chunker) MaxLength() int {
	return c.maxLength
}

// Chunk splits text into fragments in original paragraph order.
// Empty or blank text yields no fragments.
func (c *Chunker) Chunk(text string) []domain.Fragment {
	var (
		fragments []domain.Fragment
		buf       strings.Builder
		bufLen    int
	)

	flush := func() {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		bufLen = 0
		if content == "" {
			return
		}
		fragments = append(fragments, domain.Fragment{
			Position: len(fragments),
			Content:  content,
		})
	}

	for _, p := range strings.Split(text, "\n") {
		// +1 for the newline that rejoins the paragraph.
		pLen := utf8.RuneCountInString(p) + 1
		if bufLen > 0 && bufLen+pLen >= c.maxLength {
			flush()
		}
		buf.WriteString(p)
		buf.WriteByte('\n')
		bufLen += pLen
	}
	flush()

	return fragments
}
