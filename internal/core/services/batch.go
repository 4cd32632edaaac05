package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/core/ports/driving"
	"github.com/ase-lab/saturate/internal/logger"
)

// Ensure BatchRunner implements the interface.
var _ driving.BatchRunner = (*BatchRunner)(nil)

// BatchConfig holds the per-run parameters of a batch.
type BatchConfig struct {
	SessionID     string
	SelectionRate float64
	Seed          uint64
}

// BatchRunner discovers documents, samples them, and drives each selected
// document through extraction, chunking and the session driver.
type BatchRunner struct {
	cfg        BatchConfig
	source     driven.DocumentSource
	textSource *TextSource
	chunker    driven.Chunker
	driver     *SessionDriver
	sink       driven.ResultSink
	progress   driven.ProgressReporter
}

// NewBatchRunner creates a new batch runner. progress may be nil.
func NewBatchRunner(
	cfg BatchConfig,
	source driven.DocumentSource,
	textSource *TextSource,
	chunker driven.Chunker,
	driver *SessionDriver,
	sink driven.ResultSink,
	progress driven.ProgressReporter,
) *BatchRunner {
	if progress == nil {
		progress = nopProgress{}
	}
	return &BatchRunner{
		cfg:        cfg,
		source:     source,
		textSource: textSource,
		chunker:    chunker,
		driver:     driver,
		sink:       sink,
		progress:   progress,
	}
}

// Run executes one batch.
func (r *BatchRunner) Run(ctx context.Context) (*domain.BatchReport, error) {
	report := &domain.BatchReport{RunID: uuid.New().String()}

	docs, err := r.source.Discover(ctx)
	if err != nil {
		return report, fmt.Errorf("discover documents in %s: %w", r.source.Location(), err)
	}
	report.Discovered = len(docs)
	if len(docs) == 0 {
		logger.Info("No documents in %s", r.source.Location())
		return report, nil
	}

	session, err := r.driver.Open(ctx, r.cfg.SessionID)
	if err != nil {
		return report, err
	}

	selector := NewSelector(r.cfg.SelectionRate, r.cfg.Seed)

	logger.Section("Batch " + report.RunID)
	logger.Info("Documents: %d, selection rate: %.2f, max fragment length: %d",
		len(docs), selector.Rate(), r.chunker.MaxLength())

	r.progress.Start(len(docs))
	defer r.progress.Finish()

	for _, doc := range docs {
		if err := r.runDocument(ctx, session, selector, doc, report); err != nil {
			return report, err
		}
		r.progress.Advance(doc)
	}

	logger.Info("Batch %s: %d selected, %d analysed, %d empty, %d/%d fragments failed",
		report.RunID, report.Selected, report.Analysed, report.SkippedEmpty,
		report.FailedFragments, report.Fragments)

	return report, nil
}

func (r *BatchRunner) runDocument(
	ctx context.Context,
	session *domain.Session,
	selector *Selector,
	doc domain.Document,
	report *domain.BatchReport,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !selector.Include() {
		logger.Debug("Not selected: %s", doc.Name())
		return nil
	}
	report.Selected++

	extraction := r.textSource.Extract(ctx, doc)
	if !extraction.OK() {
		report.SkippedEmpty++
		return nil
	}

	fragments := r.chunker.Chunk(extraction.Text)
	if len(fragments) == 0 {
		report.SkippedEmpty++
		return nil
	}
	logger.Debug("%s: %d fragments", doc.Name(), len(fragments))

	analysis, err := r.driver.Process(ctx, session, doc, fragments)
	if err != nil {
		return err
	}
	report.Fragments += len(analysis.Outcomes)
	report.FailedFragments += analysis.Failed()

	result := domain.AnalysisResult{
		DocumentName: doc.Name(),
		Text:         analysis.Text(),
	}
	if err := r.sink.Append(ctx, result); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSinkWrite, r.sink.Location(), err)
	}
	report.Analysed++

	return nil
}

type nopProgress struct{}

func (nopProgress) Start(int)              {}
func (nopProgress) Advance(domain.Document) {}
func (nopProgress) Finish()                {}
