package index

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a non-positive attempt count is
	// passed to RetryWithBackoff.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrVectorStoreRequired is returned when no vector store is provided.
	ErrVectorStoreRequired = errors.New("vector store is required")

	// ErrRecordManagerRequired is returned when no record manager is provided.
	ErrRecordManagerRequired = errors.New("record manager is required")
)
