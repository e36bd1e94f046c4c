package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilsinclair/Quantum-AI/ai/mock"
	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
	"github.com/nikhilsinclair/Quantum-AI/storage/badger"
)

func newTestIndexer(t *testing.T, embedder *mock.MockEmbedder, opts ...Option) (*Indexer, storage.VectorStore) {
	t.Helper()

	_, vectors, records, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	indexer, err := NewIndexer(embedder, vectors, records, opts...)
	require.NoError(t, err)
	return indexer, vectors
}

func testChunks(source string, texts ...string) []core.Chunk {
	chunks := make([]core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = core.Chunk{Text: text, Source: source, DocID: "doc-1"}
	}
	return chunks
}

func TestSync_AddsNewChunks(t *testing.T) {
	indexer, vectors := newTestIndexer(t, mock.NewMockEmbedder())
	ctx := context.Background()

	source := "storage://staging/physics/documents/a.pdf"
	chunks := testChunks(source, "first chunk", "second chunk")

	summary, err := indexer.Sync(ctx, chunks)
	require.NoError(t, err)
	assert.Equal(t, Summary{NumAdded: 2, NumSkipped: 0, NumDeleted: 0}, summary)

	records, err := vectors.QueryBySource(ctx, source)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.NotEmpty(t, record.Vector)
		assert.Equal(t, source, record.Source)
	}
}

func TestSync_SecondRunIsIdempotent(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, _ := newTestIndexer(t, embedder, WithClock(stepClock()))
	ctx := context.Background()

	chunks := testChunks("storage://staging/physics/documents/a.pdf", "first chunk", "second chunk")

	_, err := indexer.Sync(ctx, chunks)
	require.NoError(t, err)
	callsAfterFirst := embedder.CallCount()

	// Fresh doc ids, identical content
	for i := range chunks {
		chunks[i].DocID = "doc-2"
	}

	summary, err := indexer.Sync(ctx, chunks)
	require.NoError(t, err)
	assert.Equal(t, Summary{NumAdded: 0, NumSkipped: 2, NumDeleted: 0}, summary)
	assert.Equal(t, callsAfterFirst, embedder.CallCount(), "unchanged chunks must not be re-embedded")
}

// stepClock advances one second per reading, so consecutive passes always
// have distinct stamps.
func stepClock() func() time.Time {
	current := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestSync_RemovesStaleChunks(t *testing.T) {
	indexer, vectors := newTestIndexer(t, mock.NewMockEmbedder(), WithClock(stepClock()))
	ctx := context.Background()

	sourceA := "storage://staging/physics/documents/a.pdf"
	sourceB := "storage://staging/physics/documents/b.pdf"

	first := append(testChunks(sourceA, "a one", "a two"), testChunks(sourceB, "b one")...)
	_, err := indexer.Sync(ctx, first)
	require.NoError(t, err)

	// Document B disappears; one chunk of A changes.
	second := testChunks(sourceA, "a one", "a two changed")
	summary, err := indexer.Sync(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.NumAdded, "only the changed chunk is re-added")
	assert.Equal(t, 1, summary.NumSkipped)
	assert.Equal(t, 2, summary.NumDeleted, "the old version and document B's chunk are removed")

	remaining, err := vectors.QueryBySource(ctx, sourceB)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	remaining, err = vectors.QueryBySource(ctx, sourceA)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestSync_EmptySetPurges(t *testing.T) {
	indexer, vectors := newTestIndexer(t, mock.NewMockEmbedder(), WithClock(stepClock()))
	ctx := context.Background()

	source := "storage://staging/physics/documents/a.pdf"
	_, err := indexer.Sync(ctx, testChunks(source, "one", "two"))
	require.NoError(t, err)

	summary, err := indexer.Sync(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{NumAdded: 0, NumSkipped: 0, NumDeleted: 2}, summary)

	remaining, err := vectors.QueryBySource(ctx, source)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSync_PurgedChunkReindexes(t *testing.T) {
	indexer, _ := newTestIndexer(t, mock.NewMockEmbedder(), WithClock(stepClock()))
	ctx := context.Background()

	source := "storage://staging/physics/documents/a.pdf"
	chunks := testChunks(source, "one", "two", "three")

	_, err := indexer.Sync(ctx, chunks)
	require.NoError(t, err)

	summary, err := indexer.Sync(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 3, summary.NumDeleted)

	// The purge must remove the bookkeeping entries too, or the chunks
	// would read as already indexed and never be re-embedded.
	summary, err = indexer.Sync(ctx, chunks)
	require.NoError(t, err)
	assert.Equal(t, Summary{NumAdded: 3, NumSkipped: 0, NumDeleted: 0}, summary)
}

func TestSync_DedupesWithinRun(t *testing.T) {
	indexer, _ := newTestIndexer(t, mock.NewMockEmbedder())

	source := "storage://staging/physics/documents/a.pdf"
	chunks := testChunks(source, "repeated text", "repeated text", "other text")

	summary, err := indexer.Sync(context.Background(), chunks)
	require.NoError(t, err)
	assert.Equal(t, Summary{NumAdded: 2, NumSkipped: 0, NumDeleted: 0}, summary)
}

func TestSync_EmbedderFailureIsFatal(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	wantErr := errors.New("embedding service down")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, wantErr
	}

	indexer, _ := newTestIndexer(t, embedder, WithRetry(2, time.Millisecond))

	_, err := indexer.Sync(context.Background(), testChunks("storage://staging/t/documents/a.pdf", "text"))

	var syncErr *core.SynchronizationError
	require.ErrorAs(t, err, &syncErr)
	assert.ErrorIs(t, err, wantErr)
}

func TestSync_Batching(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	var batchSizes []int
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		batchSizes = append(batchSizes, len(texts))
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1, 2, 3}
		}
		return vectors, nil
	}

	indexer, _ := newTestIndexer(t, embedder, WithBatchSize(2))

	source := "storage://staging/t/documents/a.pdf"
	summary, err := indexer.Sync(context.Background(), testChunks(source, "c1", "c2", "c3", "c4", "c5"))
	require.NoError(t, err)
	assert.Equal(t, 5, summary.NumAdded)
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}

func TestNewIndexer_Validation(t *testing.T) {
	_, vectors, records, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewIndexer(nil, vectors, records)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewIndexer(mock.NewMockEmbedder(), nil, records)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)

	_, err = NewIndexer(mock.NewMockEmbedder(), vectors, nil)
	assert.ErrorIs(t, err, ErrRecordManagerRequired)
}
