package chunk

import "errors"

var (
	// ErrStagingStoreRequired is returned when no staging store is provided.
	ErrStagingStoreRequired = errors.New("staging store is required")

	// ErrStagingBucketRequired is returned when the staging bucket is empty.
	ErrStagingBucketRequired = errors.New("staging bucket is required")

	// ErrSplitterRequired is returned when no splitter is provided.
	ErrSplitterRequired = errors.New("splitter is required")
)
