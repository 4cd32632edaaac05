// Package domain defines the core entities of the saturation analysis batch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A discovered input file (PDF or image)
//   - ExtractionResult: The tagged outcome of turning a Document into text
//   - Fragment: A bounded, paragraph-aligned slice of a Document's text
//   - Session: The accumulated conversational context shared by every fragment
//   - AnalysisResult: The per-document record appended to the result sink
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
