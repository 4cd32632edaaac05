package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document type, provider or engine.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNoAPIKey indicates the selected provider has no credential.
	ErrNoAPIKey = errors.New("API key not configured")

	// Extraction Errors.

	// ErrExtractionFailed indicates an extractor could not read a document.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrToolNotFound indicates an external extraction tool is not installed.
	ErrToolNotFound = errors.New("extraction tool not found")

	// Fatal Errors.

	// ErrSessionPersist indicates session history could not be stored.
	// Continuing would desynchronise the stored and in-memory context.
	ErrSessionPersist = errors.New("session persistence failed")

	// ErrSinkWrite indicates the result sink could not be written.
	ErrSinkWrite = errors.New("result sink write failed")
)
