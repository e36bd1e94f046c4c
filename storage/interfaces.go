package storage

import (
	"context"
	"time"

	"github.com/nikhilsinclair/Quantum-AI/core"
)

// BlobStore is the object-storage capability consumed by the pipeline.
// Buckets are namespaces; keys are slash-separated paths within a bucket.
// Implementations must be thread-safe and support concurrent access.
type BlobStore interface {
	// Get returns the contents of the blob at bucket/key.
	// Returns ErrNotFound if the blob doesn't exist.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put writes data to bucket/key, overwriting any existing blob.
	Put(ctx context.Context, bucket, key string, data []byte) error

	// Delete removes the blob at bucket/key.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, bucket, key string) error

	// List returns all keys in the bucket that start with prefix,
	// in lexicographic order.
	List(ctx context.Context, bucket, prefix string) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// VectorStore persists index records keyed by chunk identity hash.
// Implementations must be thread-safe.
type VectorStore interface {
	// Upsert inserts or replaces index records by their ID.
	Upsert(ctx context.Context, records ...*core.IndexRecord) error

	// Delete removes index records by their IDs.
	// Missing IDs are ignored.
	Delete(ctx context.Context, ids ...string) error

	// Get retrieves a single index record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*core.IndexRecord, error)

	// QueryBySource returns all index records whose Source equals source,
	// ordered by ID.
	QueryBySource(ctx context.Context, source string) ([]*core.IndexRecord, error)

	// Close releases resources held by the store.
	Close() error
}

// RecordManager tracks which chunk identity hashes are currently indexed and
// when a synchronization pass last touched them. It is the bookkeeping side
// of the vector store's full-cleanup synchronization.
type RecordManager interface {
	// Exists reports, for each ID, whether an entry is recorded.
	// The result slice matches the order of ids.
	Exists(ctx context.Context, ids []string) ([]bool, error)

	// Update records or refreshes entries for the given IDs. groupIDs must
	// have the same length as ids; at becomes the entries' UpdatedAt.
	Update(ctx context.Context, ids []string, groupIDs []string, at time.Time) error

	// ListBefore returns the IDs of all entries last updated strictly before
	// cutoff.
	ListBefore(ctx context.Context, cutoff time.Time) ([]string, error)

	// Delete removes entries by their IDs. Missing IDs are ignored.
	Delete(ctx context.Context, ids ...string) error

	// Close releases resources held by the manager.
	Close() error
}
