// Package storage defines the persistence capabilities the ingestion
// pipeline consumes: an object store for document and page blobs, a vector
// store for embedded chunks, and a record manager that tracks which chunk
// identities are indexed.
//
// The interfaces are implemented by the badger subpackage (local, embedded)
// and the gcs subpackage (Google Cloud Storage, blobs only). Serialization
// of persisted values uses the MUS binary format.
package storage
