package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/domain"
)

type recordingCloser struct {
	name   string
	err    error
	closed *[]string
}

func (c recordingCloser) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestClosers_ClosesEveryResource(t *testing.T) {
	var closed []string
	cs := closers{
		recordingCloser{name: "store", closed: &closed},
		recordingCloser{name: "llm", closed: &closed},
	}

	require.NoError(t, cs.Close())
	assert.Equal(t, []string{"store", "llm"}, closed)
}

func TestClosers_KeepsClosingAfterError(t *testing.T) {
	var closed []string
	storeErr := errors.New("database is locked")
	llmErr := errors.New("grpc: connection closing")
	cs := closers{
		recordingCloser{name: "store", err: storeErr, closed: &closed},
		recordingCloser{name: "llm", err: llmErr, closed: &closed},
	}

	err := cs.Close()

	assert.ErrorIs(t, err, storeErr)
	assert.ErrorIs(t, err, llmErr)
	assert.Equal(t, []string{"store", "llm"}, closed)
}

func TestBuildExtractors_CoversSupportedTypes(t *testing.T) {
	extractors := buildExtractors(domain.DefaultSettings().Extract)

	var types []domain.DocumentType
	for _, e := range extractors {
		types = append(types, e.SupportedTypes()...)
	}
	assert.ElementsMatch(t, []domain.DocumentType{domain.DocumentTypePDF, domain.DocumentTypeImage}, types)
}
