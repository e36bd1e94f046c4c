package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikhilsinclair/Quantum-AI/ai"
	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

const (
	defaultBatchSize   = 64
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Summary reports what a synchronization pass changed in the index.
type Summary struct {
	NumAdded   int
	NumSkipped int
	NumDeleted int
}

// Synchronizer reconciles a set of chunks against the vector index.
type Synchronizer interface {
	// Sync makes the index contain exactly the given chunks for the sources
	// they cover. Unchanged chunks are kept without re-embedding, new chunks
	// are embedded and added, and records no longer present are removed.
	Sync(ctx context.Context, chunks []core.Chunk) (Summary, error)
}

// Indexer implements Synchronizer on top of an embedder, a vector store,
// and a record manager tracking index membership.
type Indexer struct {
	embedder    ai.Embedder
	store       storage.VectorStore
	records     storage.RecordManager
	batchSize   int
	maxAttempts int
	baseDelay   time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

var _ Synchronizer = (*Indexer)(nil)

// Option configures an Indexer.
type Option func(*Indexer) error

// WithBatchSize sets how many chunks are embedded and upserted at a time.
// Default is 64.
func WithBatchSize(n int) Option {
	return func(i *Indexer) error {
		if n < 1 {
			n = 1
		}
		i.batchSize = n
		return nil
	}
}

// WithRetry configures embedding retry behavior. Defaults are 3 attempts
// with a one second base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(i *Indexer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		i.maxAttempts = maxAttempts
		i.baseDelay = baseDelay
		return nil
	}
}

// WithClock overrides the time source used to stamp index records.
func WithClock(now func() time.Time) Option {
	return func(i *Indexer) error {
		if now != nil {
			i.now = now
		}
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Indexer) error {
		if logger != nil {
			i.logger = logger
		}
		return nil
	}
}

// NewIndexer creates an Indexer.
func NewIndexer(embedder ai.Embedder, store storage.VectorStore, records storage.RecordManager, opts ...Option) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if records == nil {
		return nil, ErrRecordManagerRequired
	}

	i := &Indexer{
		embedder:    embedder,
		store:       store,
		records:     records,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// Sync reconciles the index with chunks. Records touched by this pass are
// stamped with the pass start time; anything older afterwards is stale and
// gets removed, so an empty chunk set purges the index. Any failure aborts
// the pass and is reported as a *core.SynchronizationError.
func (i *Indexer) Sync(ctx context.Context, chunks []core.Chunk) (Summary, error) {
	// Entries persist at microsecond precision; the stamp must match what
	// comes back from storage or freshly touched records would read as
	// stale against their own pass.
	at := i.now().UTC().Truncate(time.Microsecond)

	unique := dedupe(chunks)

	var summary Summary
	for start := 0; start < len(unique); start += i.batchSize {
		end := min(start+i.batchSize, len(unique))
		added, skipped, err := i.syncBatch(ctx, unique[start:end], at)
		if err != nil {
			return Summary{}, &core.SynchronizationError{Err: err}
		}
		summary.NumAdded += added
		summary.NumSkipped += skipped
	}

	deleted, err := i.removeStale(ctx, at)
	if err != nil {
		return Summary{}, &core.SynchronizationError{Err: err}
	}
	summary.NumDeleted = deleted

	i.logger.Info("index synchronized",
		"added", summary.NumAdded,
		"skipped", summary.NumSkipped,
		"deleted", summary.NumDeleted)
	return summary, nil
}

// syncBatch embeds and upserts the chunks in the batch that the index does
// not already hold, then stamps every record in the batch as seen at.
func (i *Indexer) syncBatch(ctx context.Context, batch []core.Chunk, at time.Time) (added, skipped int, err error) {
	ids := make([]string, len(batch))
	sources := make([]string, len(batch))
	for n, chunk := range batch {
		ids[n] = chunk.ID()
		sources[n] = chunk.Source
	}

	exists, err := i.records.Exists(ctx, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("check existing records: %w", err)
	}

	var fresh []core.Chunk
	var freshIDs []string
	for n, chunk := range batch {
		if exists[n] {
			skipped++
			continue
		}
		fresh = append(fresh, chunk)
		freshIDs = append(freshIDs, ids[n])
	}

	if len(fresh) > 0 {
		texts := make([]string, len(fresh))
		for n, chunk := range fresh {
			texts[n] = chunk.Text
		}

		var vectors [][]float32
		err = RetryWithBackoff(ctx, func() error {
			var embedErr error
			vectors, embedErr = i.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, i.maxAttempts, i.baseDelay, i.logger)
		if err != nil {
			return 0, 0, fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(fresh) {
			return 0, 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(fresh))
		}

		for n, chunk := range fresh {
			record := &core.IndexRecord{
				ID:     freshIDs[n],
				Source: chunk.Source,
				DocID:  chunk.DocID,
				Text:   chunk.Text,
				Vector: vectors[n],
			}
			if err := i.store.Upsert(ctx, record); err != nil {
				return 0, 0, fmt.Errorf("upsert record %q: %w", record.ID, err)
			}
		}
		added = len(fresh)
	}

	if err := i.records.Update(ctx, ids, sources, at); err != nil {
		return 0, 0, fmt.Errorf("update records: %w", err)
	}
	return added, skipped, nil
}

// removeStale deletes every record not touched by the pass that started at
// cutoff.
func (i *Indexer) removeStale(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := i.records.ListBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale records: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	for _, id := range stale {
		if err := i.store.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("delete record %q: %w", id, err)
		}
	}
	if err := i.records.Delete(ctx, stale...); err != nil {
		return 0, fmt.Errorf("delete record entries: %w", err)
	}
	return len(stale), nil
}

// dedupe keeps the first chunk for each id, preserving order.
func dedupe(chunks []core.Chunk) []core.Chunk {
	seen := make(map[string]struct{}, len(chunks))
	unique := make([]core.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		id := chunk.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, chunk)
	}
	return unique
}
