// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Discovers input documents
//   - Extractor: Turns one document type into plain text
//   - Chunker: Splits text into bounded fragments
//   - Agent: Runs one fragment against the accumulated session
//   - LLMService: Chat completion used by the agent
//   - SessionStore: Session history persistence
//   - ResultSink: Append-only analysis output
//   - ConfigStore: Application configuration
//   - PromptStore: Agent instructions
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProgressReporter: Operator progress display. Nil reports nothing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
