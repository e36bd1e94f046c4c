// Package index keeps a vector index in sync with a set of chunks. New
// chunks are embedded and stored, unchanged chunks are skipped without
// re-embedding, and records for vanished chunks are deleted.
package index
