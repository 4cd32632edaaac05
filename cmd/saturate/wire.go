package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ase-lab/saturate/internal/adapters/driven/agent"
	"github.com/ase-lab/saturate/internal/adapters/driven/ai"
	"github.com/ase-lab/saturate/internal/adapters/driven/config/file"
	"github.com/ase-lab/saturate/internal/adapters/driven/discovery/filesystem"
	filesink "github.com/ase-lab/saturate/internal/adapters/driven/sink/file"
	"github.com/ase-lab/saturate/internal/adapters/driven/storage/sqlite"
	"github.com/ase-lab/saturate/internal/chunker"
	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/core/ports/driving"
	"github.com/ase-lab/saturate/internal/core/services"
	"github.com/ase-lab/saturate/internal/extractors/image"
	"github.com/ase-lab/saturate/internal/extractors/ocr"
	"github.com/ase-lab/saturate/internal/extractors/pdf"
	"github.com/ase-lab/saturate/internal/logger"
)

// app composes the adapters. Prompts are read from the same
// directory as config.toml.
type app struct {
	configDir string
}

func (a *app) loadSettings(dir string) (driving.SettingsService, error) {
	a.configDir = dir
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("Config: %s", store.Path())
	return services.NewSettingsService(store, nil), nil
}

func (a *app) ping(ctx context.Context, settings domain.AgentSettings) error {
	_, err := ai.CreateAndValidateLLMService(ctx, settings)
	return err
}

// buildBatch wires every adapter for one run.
func (a *app) buildBatch(
	ctx context.Context,
	settings domain.Settings,
	progress driven.ProgressReporter,
) (driving.BatchRunner, io.Closer, error) {
	llm, err := ai.CreateLLMService(ctx, settings.Agent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM service: %w", err)
	}

	prompts := file.NewPromptStore(filepath.Join(a.configDir, file.DefaultPromptDir))
	instructions, err := prompts.Load(driven.PromptAnalystInstructions)
	if err != nil {
		llm.Close()
		return nil, nil, fmt.Errorf("failed to load analyst instructions: %w", err)
	}

	analyst := agent.New(llm, agent.Config{
		Name:              settings.Agent.Name,
		Instructions:      instructions,
		MaxHistory:        settings.Session.MaxHistory,
		Timeout:           settings.Agent.Timeout,
		RequestsPerMinute: settings.Agent.RequestsPerMinute,
		Temperature:       settings.Agent.Temperature,
		MaxTokens:         settings.Agent.MaxTokens,
	})

	store, err := sqlite.NewStore(settings.Session.DBPath)
	if err != nil {
		llm.Close()
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	logger.Debug("Session %s stored in %s", settings.Session.ID, store.Path())

	runner := services.NewBatchRunner(
		services.BatchConfig{
			SessionID:     settings.Session.ID,
			SelectionRate: settings.Batch.SelectionRate,
			Seed:          settings.Batch.Seed,
		},
		filesystem.NewSource(settings.Batch.InputDir),
		services.NewTextSource(buildExtractors(settings.Extract)...),
		chunker.New(chunker.WithMaxLength(settings.Chunk.MaxLength)),
		services.NewSessionDriver(analyst, store.SessionStore()),
		filesink.NewResultSink(settings.Batch.ResultsPath, settings.Batch.HeaderLabel),
		progress,
	)
	return runner, closers{store, llm}, nil
}

// closers closes every element, in order, and joins the errors.
type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildExtractors(settings domain.ExtractSettings) []driven.Extractor {
	tesseract := ocr.New(settings.OCRLanguage)
	logger.Debug("OCR language: %s", tesseract.Language())
	if err := ocr.CheckAvailable(); err != nil {
		logger.Warn("%v; PNG documents and scanned PDFs will be skipped.\n%s",
			err, ocr.InstallInstructions())
	}

	mupdf := pdf.NewMuPDF(pdf.DefaultRenderDPI)
	var engine pdf.TextEngine = mupdf
	if settings.PDFEngine == domain.PDFEnginePDFToText {
		engine = pdf.NewPoppler()
	}

	opts := []pdf.Option{pdf.WithInspector(pdf.PDFCPU{})}
	if settings.OCRFallback {
		opts = append(opts, pdf.WithOCRFallback(mupdf, tesseract))
	}

	return []driven.Extractor{
		pdf.New(engine, opts...),
		image.New(tesseract),
	}
}
