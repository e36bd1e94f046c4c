package ingest

import "errors"

var (
	// ErrSourceStoreRequired is returned when no source store is provided.
	ErrSourceStoreRequired = errors.New("source store is required")

	// ErrSourceBucketRequired is returned when the source bucket is empty.
	ErrSourceBucketRequired = errors.New("source bucket is required")

	// ErrExtractorRequired is returned when no extractor is provided.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrChunkerRequired is returned when no chunker is provided.
	ErrChunkerRequired = errors.New("chunker is required")

	// ErrSynchronizerRequired is returned when no synchronizer is provided.
	ErrSynchronizerRequired = errors.New("synchronizer is required")

	// ErrTopicRequired is returned when Run is called with an empty topic.
	ErrTopicRequired = errors.New("topic is required")
)
