// Package ingest orchestrates the document ingestion pipeline: discover
// documents under a topic, extract and chunk each one concurrently, then
// synchronize the results into the vector index.
package ingest
