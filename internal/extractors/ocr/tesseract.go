// Package ocr runs optical character recognition through the tesseract CLI.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/ase-lab/saturate/internal/core/domain"
)

// DefaultLanguage is the tesseract language pack used when none is set.
const DefaultLanguage = "spa"

const binary = "tesseract"

// ErrTesseractNotFound indicates the tesseract binary is not installed.
var ErrTesseractNotFound = fmt.Errorf("%w: tesseract not found in PATH", domain.ErrToolNotFound)

// CommandRunner executes external commands. Tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// Engine recognises text in image files.
type Engine struct {
	runner   CommandRunner
	language string
	lookPath func(string) (string, error)
}

// New creates an engine that shells out to tesseract.
func New(language string) *Engine {
	return NewWithRunner(execRunner{}, language)
}

// NewWithRunner creates an engine with a custom command runner.
func NewWithRunner(runner CommandRunner, language string) *Engine {
	if language == "" {
		language = DefaultLanguage
	}
	return &Engine{
		runner:   runner,
		language: language,
		lookPath: exec.LookPath,
	}
}

// Language returns the tesseract language code.
func (e *Engine) Language() string {
	return e.language
}

// RecogniseFile returns the text tesseract reads from the image at path.
func (e *Engine) RecogniseFile(ctx context.Context, path string) (string, error) {
	if _, err := e.lookPath(binary); err != nil {
		return "", ErrTesseractNotFound
	}

	out, err := e.runner.Run(ctx, binary, path, "stdout", "-l", e.language)
	if err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w", path, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RecogniseImage writes img to a temporary PNG and recognises it.
func (e *Engine) RecogniseImage(ctx context.Context, img image.Image) (string, error) {
	tmp, err := os.CreateTemp("", "saturate-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	return e.RecogniseFile(ctx, tmp.Name())
}

// CheckAvailable returns ErrTesseractNotFound if tesseract is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath(binary); err != nil {
		return ErrTesseractNotFound
	}
	return nil
}

// InstallInstructions returns how to install tesseract with the Spanish language pack.
func InstallInstructions() string {
	return `tesseract is required to read PNG scans and image-only PDFs.

Install it with the Spanish language data:
  macOS:         brew install tesseract tesseract-lang
  Ubuntu/Debian: sudo apt install tesseract-ocr tesseract-ocr-spa
  Fedora:        sudo dnf install tesseract tesseract-langpack-spa
  Windows:       https://github.com/UB-Mannheim/tesseract/wiki`
}
