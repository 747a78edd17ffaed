// Package sqlite provides the SQLite-backed DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Extracted entities are stored as a JSON column alongside
// the document row.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of NNN_name.up.sql and
// NNN_name.down.sql files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.kgingest/data/documents.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite locking in WAL mode.
package sqlite
