package domain

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxFragmentLength is the default fragment length bound, in characters.
const DefaultMaxFragmentLength = 6000

// Fragment is a bounded, paragraph-aligned slice of one Document's text.
// It is the unit submitted to the analysis agent.
type Fragment struct {
	// Position is the zero-based ordinal within the document.
	Position int

	// Content is the trimmed fragment text.
	Content string
}

// Len returns the fragment length in characters.
func (f Fragment) Len() int {
	return utf8.RuneCountInString(f.Content)
}

// FragmentStatus tags the outcome of one agent exchange.
type FragmentStatus int

const (
	// FragmentOK means the agent returned output for the fragment.
	FragmentOK FragmentStatus = iota

	// FragmentFailed means the agent call failed and the fragment contributes nothing.
	FragmentFailed
)

// String returns the string representation.
func (s FragmentStatus) String() string {
	if s == FragmentOK {
		return "ok"
	}
	return "failed"
}

// FragmentOutcome records what happened to one fragment.
type FragmentOutcome struct {
	Position int
	Status   FragmentStatus
	Output   string
	Err      error
}

// DocumentAnalysis collects the ordered fragment outcomes for one document.
type DocumentAnalysis struct {
	Document Document
	Outcomes []FragmentOutcome
}

// Text joins the outputs of successful fragments in order, one per line.
func (a *DocumentAnalysis) Text() string {
	outputs := make([]string, 0, len(a.Outcomes))
	for _, o := range a.Outcomes {
		if o.Status == FragmentOK {
			outputs = append(outputs, o.Output)
		}
	}
	return strings.Join(outputs, "\n")
}

// Failed returns the number of fragments whose agent call failed.
func (a *DocumentAnalysis) Failed() int {
	n := 0
	for _, o := range a.Outcomes {
		if o.Status == FragmentFailed {
			n++
		}
	}
	return n
}

// AnalysisResult is one record of the result sink.
type AnalysisResult struct {
	// DocumentName is the display name written in the record header.
	DocumentName string

	// Text is the concatenated analysis of the document's fragments.
	Text string
}
