// Package ai provides abstractions for the AI services the ingestion
// pipeline consumes.
//
// The package defines two interfaces: Embedder, which turns text into
// vectors, and Provider, which owns service lifecycle. The core pipeline
// depends only on these abstractions; the raw embedding model itself is
// always an external service.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors return interface types to prevent coupling to a
// concrete implementation; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
