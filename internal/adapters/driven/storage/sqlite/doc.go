// Package sqlite provides a SQLite-backed implementation of driven.SemanticIndex.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Embeddings are stored as little-endian float32 blobs and
// ranked in process by cosine similarity, which is adequate for the few
// dozen reports a run collects.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// An empty path opens a private in-memory database that lives as long as the
// Store. Otherwise the file is created on demand and opened in WAL mode.
package sqlite
