package splitter

import (
	"context"

	"github.com/tmc/langchaingo/textsplitter"
)

// Recursive adapts langchaingo's recursive character splitter to the
// Splitter interface. It needs no embedding service, which makes it the
// fallback when no embedder is available or page text is purely structural.
type Recursive struct {
	inner textsplitter.RecursiveCharacter
}

var _ Splitter = (*Recursive)(nil)

// NewRecursive creates a length-based splitter.
func NewRecursive(opts ...textsplitter.Option) *Recursive {
	return &Recursive{inner: textsplitter.NewRecursiveCharacter(opts...)}
}

// Split segments text by separators and length budget.
func (r *Recursive) Split(_ context.Context, text string) ([]string, error) {
	return r.inner.SplitText(text)
}
