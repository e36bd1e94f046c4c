// Package extract converts source documents into per-page staged text
// blobs. Parsers are registered per file extension; the default registry
// handles PDF and form-feed delimited plain text.
package extract
