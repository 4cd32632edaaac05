// Package services implements the driving port interfaces.
// Services contain the core batch logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline runs one document at a time:
//
//	DocumentSource -> Selector -> TextSource -> Chunker -> SessionDriver -> ResultSink
//
// Services depend only on domain and the ports, plus google/uuid for ids.
package services
