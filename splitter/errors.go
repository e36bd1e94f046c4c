package splitter

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidPercentile is returned when the breakpoint percentile is
	// outside (0, 100].
	ErrInvalidPercentile = errors.New("percentile must be in (0, 100]")
)
