// Package gcs implements the storage.BlobStore capability on Google Cloud
// Storage, for topics whose documents live in cloud buckets rather than the
// embedded local store.
package gcs
