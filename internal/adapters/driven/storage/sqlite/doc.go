// Package sqlite provides the SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Session history survives process restarts, so re-running a batch with the
// same session ID continues the accumulated analysis rather than starting fresh.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files;
// applied versions are recorded in schema_migrations.
//
//   - sessions: one row per session ID
//   - session_items: ordered user and assistant turns
package sqlite
