package splitter

import "context"

// Splitter segments a page's text into an ordered sequence of coherent
// spans. It is the pluggable boundary-detection capability of the chunker:
// implementations may consult an embedding service (Semantic) or work purely
// on text length (Recursive).
//
// A returned segment may be empty; the chunker drops empty segments with a
// warning.
type Splitter interface {
	Split(ctx context.Context, text string) ([]string, error)
}
