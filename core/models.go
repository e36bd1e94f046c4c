package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// SourceScheme is the URI scheme of canonical document sources.
const SourceScheme = "storage"

// DocumentsSegment is the folder segment under a topic that holds
// ingestible documents.
const DocumentsSegment = "documents"

// DocumentRef identifies a document within a topic. A document is a single
// blob stored under "{topic}/documents/{filename}" in source storage.
type DocumentRef struct {
	Topic    string
	Filename string
}

// Key returns the object-storage key of the document blob.
func (d DocumentRef) Key() string {
	return d.Topic + "/" + DocumentsSegment + "/" + d.Filename
}

// Source returns the canonical source URI that groups every chunk derived
// from this document, scoped to the staging bucket.
func (d DocumentRef) Source(bucket string) string {
	return fmt.Sprintf("%s://%s/%s", SourceScheme, bucket, d.Key())
}

// Page returns the PageRef for the given 1-based page number.
func (d DocumentRef) Page(n int) PageRef {
	return PageRef{Topic: d.Topic, Filename: d.Filename, Number: n}
}

// PageRef identifies one page of one document. It is the structured handle
// for a staged page artifact: the staged key and the canonical source URI
// are both derived from it, so no component ever has to parse a generated
// storage key to recover document identity.
type PageRef struct {
	Topic    string
	Filename string
	Number   int // 1-based page number
}

// Document returns the DocumentRef this page belongs to.
func (p PageRef) Document() DocumentRef {
	return DocumentRef{Topic: p.Topic, Filename: p.Filename}
}

// StagedKey returns the staging-storage key of the page artifact.
func (p PageRef) StagedKey() string {
	return fmt.Sprintf("%s/%s/%s_page_%d.txt", p.Topic, DocumentsSegment, p.Filename, p.Number)
}

// Source returns the canonical source URI of the owning document.
func (p PageRef) Source(bucket string) string {
	return p.Document().Source(bucket)
}

// Chunk is a semantically coherent span of text plus provenance metadata.
// Source groups all chunks of one document; DocID is shared by every chunk
// derived from the same page artifact and fresh for each page.
type Chunk struct {
	Text   string
	Source string
	DocID  string
}

// ID returns the content-identity hash of the chunk.
func (c *Chunk) ID() string {
	return ChunkID(c.Source, c.Text)
}

// ChunkID generates a deterministic identity hash from a chunk's source and
// text using BLAKE2b. DocID is deliberately excluded: it is regenerated on
// every run, and folding it into the identity would force re-embedding of
// unchanged content.
func ChunkID(source, text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// IndexRecord is one row of the vector store: a chunk plus its embedding,
// keyed by the chunk's identity hash.
type IndexRecord struct {
	ID     string
	Source string
	DocID  string
	Text   string
	Vector []float32
}

// IndexEntry is the record manager's bookkeeping row for one indexed chunk.
// GroupID is the chunk's source URI; UpdatedAt is the start time of the last
// synchronization pass that saw the chunk.
type IndexEntry struct {
	GroupID   string
	UpdatedAt time.Time
}
