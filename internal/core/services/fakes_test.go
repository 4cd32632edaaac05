package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// fakeExtractor returns a fixed result per path.
type fakeExtractor struct {
	types   []domain.DocumentType
	results map[string]domain.ExtractionResult
	panics  bool
	calls   []string
}

func (f *fakeExtractor) SupportedTypes() []domain.DocumentType { return f.types }

func (f *fakeExtractor) Extract(_ context.Context, path string) domain.ExtractionResult {
	f.calls = append(f.calls, path)
	if f.panics {
		panic("engine crashed")
	}
	if r, ok := f.results[path]; ok {
		return r
	}
	return domain.Extracted("", nil)
}

// fakeAgent echoes input, fails on selected inputs, and records how many
// calls are in flight at once.
type fakeAgent struct {
	failOn   map[string]error
	inFlight atomic.Int32
	maxSeen  atomic.Int32

	mu       sync.Mutex
	inputs   []string
	historyN []int
	onRun    func()
}

func (a *fakeAgent) Name() string { return "fake" }

func (a *fakeAgent) Run(_ context.Context, session *domain.Session, input string) (string, error) {
	n := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		seen := a.maxSeen.Load()
		if n <= seen || a.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	a.mu.Lock()
	a.inputs = append(a.inputs, input)
	a.historyN = append(a.historyN, session.Len())
	a.mu.Unlock()

	if a.onRun != nil {
		a.onRun()
	}
	if err, ok := a.failOn[input]; ok {
		return "", err
	}
	return "out:" + input, nil
}

// failingStore wraps a session store whose Append always fails.
type failingStore struct {
	err error
}

func (s *failingStore) Load(context.Context, string) ([]domain.SessionItem, error) { return nil, nil }

func (s *failingStore) Append(context.Context, string, ...domain.SessionItem) error { return s.err }


// fakeSource returns fixed documents.
type fakeSource struct {
	docs []domain.Document
	err  error
}

func (s *fakeSource) Discover(context.Context) ([]domain.Document, error) { return s.docs, s.err }

func (s *fakeSource) Location() string { return "testdata" }

// fakeSink collects results in memory.
type fakeSink struct {
	results []domain.AnalysisResult
	err     error
}

func (s *fakeSink) Append(_ context.Context, r domain.AnalysisResult) error {
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, r)
	return nil
}

func (s *fakeSink) Location() string { return "results.txt" }

// fakeProgress records progress calls.
type fakeProgress struct {
	total    int
	advanced []string
	finished bool
}

func (p *fakeProgress) Start(total int)             { p.total = total }
func (p *fakeProgress) Advance(doc domain.Document) { p.advanced = append(p.advanced, doc.Name()) }
func (p *fakeProgress) Finish()                     { p.finished = true }

var errAgent = errors.New("agent timeout")

func pdfDoc(name string) domain.Document {
	return domain.Document{Path: "testdata/" + name, Type: domain.DocumentTypePDF}
}

func fragments(contents ...string) []domain.Fragment {
	out := make([]domain.Fragment, len(contents))
	for i, c := range contents {
		out[i] = domain.Fragment{Position: i, Content: c}
	}
	return out
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("doc-%02d.pdf", i)
	}
	return out
}
