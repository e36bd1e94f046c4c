package ingest

import (
	"path"
	"strings"

	"github.com/nikhilsinclair/Quantum-AI/core"
)

// Predicate decides whether an enumerated object key refers to an
// ingestible document.
type Predicate func(key string) bool

// supportedExtensions are the document formats the pipeline will attempt to
// ingest. Enumeration admits all of them even though only a subset has a
// parser today; unsupported ones surface as per-document extraction
// failures rather than being silently invisible.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".pptx": {},
	".txt":  {},
	".xlsx": {},
	".xps":  {},
	".mobi": {},
	".cbz":  {},
}

// IsIngestible reports whether key names a document the pipeline should
// ingest: its parent folder segment must be "documents" and its extension
// must be a supported document format. Keys in other folders, such as
// generated artifacts living alongside the documents tree, are excluded.
func IsIngestible(key string) bool {
	segments := strings.Split(key, "/")
	if len(segments) < 2 || segments[len(segments)-2] != core.DocumentsSegment {
		return false
	}
	ext := strings.ToLower(path.Ext(key))
	_, ok := supportedExtensions[ext]
	return ok
}
