package extract

import "errors"

var (
	// ErrSourceStoreRequired is returned when a source blob store is not provided.
	ErrSourceStoreRequired = errors.New("source blob store required")

	// ErrStagingStoreRequired is returned when a staging blob store is not provided.
	ErrStagingStoreRequired = errors.New("staging blob store required")

	// ErrSourceBucketRequired is returned when the source bucket name is empty.
	ErrSourceBucketRequired = errors.New("source bucket required")

	// ErrStagingBucketRequired is returned when the staging bucket name is empty.
	ErrStagingBucketRequired = errors.New("staging bucket required")

	// ErrNoParser indicates no parser is registered for a document's extension.
	ErrNoParser = errors.New("no parser registered for extension")
)
