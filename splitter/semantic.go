package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/nikhilsinclair/Quantum-AI/ai"
)

const (
	defaultPercentile = 95.0
	defaultBufferSize = 1
)

// Semantic splits text at points where the embedding of the surrounding
// sentences shifts sharply. Each sentence is embedded together with its
// neighbors (a buffer window) to smooth noise; the cosine distance between
// consecutive windows is computed, and a boundary is placed wherever the
// distance exceeds the configured percentile of all distances in the text.
type Semantic struct {
	embedder   ai.Embedder
	percentile float64
	bufferSize int
	logger     *slog.Logger
}

var _ Splitter = (*Semantic)(nil)

// SemanticOption configures a Semantic splitter.
type SemanticOption func(*Semantic) error

// WithPercentile sets the breakpoint percentile. Higher values produce fewer,
// larger chunks. Default is 95.
func WithPercentile(p float64) SemanticOption {
	return func(s *Semantic) error {
		if p <= 0 || p > 100 {
			return fmt.Errorf("%w: got %v", ErrInvalidPercentile, p)
		}
		s.percentile = p
		return nil
	}
}

// WithBufferSize sets how many neighboring sentences are folded into each
// sentence's embedding window. Default is 1.
func WithBufferSize(n int) SemanticOption {
	return func(s *Semantic) error {
		if n < 0 {
			n = 0
		}
		s.bufferSize = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) SemanticOption {
	return func(s *Semantic) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// NewSemantic creates a semantic splitter over the given embedder.
func NewSemantic(embedder ai.Embedder, opts ...SemanticOption) (*Semantic, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Semantic{
		embedder:   embedder,
		percentile: defaultPercentile,
		bufferSize: defaultBufferSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Split segments text at semantic boundaries. Texts with fewer than two
// sentences come back as a single segment; a whitespace-only text comes back
// as a single empty segment, which the caller is expected to drop.
func (s *Semantic) Split(ctx context.Context, text string) ([]string, error) {
	sentences := splitSentences(text)
	if len(sentences) < 2 {
		if len(sentences) == 0 {
			return []string{strings.TrimSpace(text)}, nil
		}
		return []string{sentences[0]}, nil
	}

	windows := s.windows(sentences)
	vectors, err := s.embedder.EmbedTexts(ctx, windows)
	if err != nil {
		return nil, fmt.Errorf("embed sentence windows: %w", err)
	}
	if len(vectors) != len(sentences) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d windows", len(vectors), len(sentences))
	}

	distances := make([]float64, len(sentences)-1)
	for i := range distances {
		distances[i] = 1 - cosineSimilarity(vectors[i], vectors[i+1])
	}
	threshold := percentile(distances, s.percentile)

	var segments []string
	var current []string
	for i, sentence := range sentences {
		current = append(current, sentence)
		if i < len(distances) && distances[i] > threshold {
			segments = append(segments, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}

	s.logger.Debug("semantic split complete", "sentences", len(sentences), "segments", len(segments))
	return segments, nil
}

// windows builds the buffered embedding window for each sentence.
func (s *Semantic) windows(sentences []string) []string {
	windows := make([]string, len(sentences))
	for i := range sentences {
		lo := i - s.bufferSize
		if lo < 0 {
			lo = 0
		}
		hi := i + s.bufferSize + 1
		if hi > len(sentences) {
			hi = len(sentences)
		}
		windows[i] = strings.Join(sentences[lo:hi], " ")
	}
	return windows
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Returns 0 for zero-length or mismatched vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// percentile returns the p-th percentile of values using linear
// interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
