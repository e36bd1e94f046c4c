package chunk

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
	"github.com/nikhilsinclair/Quantum-AI/storage/badger"
)

// stubSplitter returns a canned segmentation regardless of input.
type stubSplitter struct {
	segments []string
	err      error
}

func (s *stubSplitter) Split(ctx context.Context, text string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.segments != nil {
		return s.segments, nil
	}
	return []string{text}, nil
}

func newTestChunker(t *testing.T, split *stubSplitter, opts ...Option) (*Chunker, storage.BlobStore) {
	t.Helper()

	blobs, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	chunker, err := NewChunker(blobs, "staging", split, opts...)
	require.NoError(t, err)
	return chunker, blobs
}

func stagePage(t *testing.T, blobs storage.BlobStore, ref core.PageRef, text string) {
	t.Helper()
	require.NoError(t, blobs.Put(context.Background(), "staging", ref.StagedKey(), []byte(text)))
}

func TestChunkPages_Basics(t *testing.T) {
	chunker, blobs := newTestChunker(t, &stubSplitter{})
	ctx := context.Background()

	doc := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}
	ref := doc.Page(1)
	stagePage(t, blobs, ref, "The page text.")

	chunks, err := chunker.ChunkPages(ctx, []core.PageRef{ref})
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, "The page text.", chunks[0].Text)
	assert.Equal(t, "storage://staging/physics/documents/notes.txt", chunks[0].Source)
	assert.NotEmpty(t, chunks[0].DocID)

	// The staged blob is consumed
	_, err = blobs.Get(ctx, "staging", ref.StagedKey())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkPages_DocIDPerPage(t *testing.T) {
	split := &stubSplitter{segments: []string{"seg one", "seg two"}}

	next := 0
	chunker, blobs := newTestChunker(t, split, WithDocIDFunc(func() string {
		next++
		return fmt.Sprintf("doc-%d", next)
	}))

	doc := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}
	refs := []core.PageRef{doc.Page(1), doc.Page(2)}
	for _, ref := range refs {
		stagePage(t, blobs, ref, "text")
	}

	chunks, err := chunker.ChunkPages(context.Background(), refs)
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	// Chunks of one page share a doc id; pages never share one.
	assert.Equal(t, chunks[0].DocID, chunks[1].DocID)
	assert.Equal(t, chunks[2].DocID, chunks[3].DocID)
	assert.NotEqual(t, chunks[0].DocID, chunks[2].DocID)
}

func TestChunkPages_DropsEmptySegments(t *testing.T) {
	split := &stubSplitter{segments: []string{"real segment", "", "another"}}
	chunker, blobs := newTestChunker(t, split)

	ref := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}.Page(1)
	stagePage(t, blobs, ref, "text")

	chunks, err := chunker.ChunkPages(context.Background(), []core.PageRef{ref})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "real segment", chunks[0].Text)
	assert.Equal(t, "another", chunks[1].Text)
}

func TestChunkPages_MissingPageIsIsolated(t *testing.T) {
	chunker, blobs := newTestChunker(t, &stubSplitter{})
	ctx := context.Background()

	doc := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}
	good := doc.Page(1)
	missing := doc.Page(2)
	stagePage(t, blobs, good, "good page")

	chunks, err := chunker.ChunkPages(ctx, []core.PageRef{missing, good})

	// The good page still produced chunks
	require.Len(t, chunks, 1)
	assert.Equal(t, "good page", chunks[0].Text)

	var stagingErr *core.StagingIOError
	require.ErrorAs(t, err, &stagingErr)
	assert.Equal(t, missing.StagedKey(), stagingErr.Key)
}

func TestChunkPages_SplitFailureStillDeletes(t *testing.T) {
	splitErr := errors.New("splitter broke")
	chunker, blobs := newTestChunker(t, &stubSplitter{err: splitErr})
	ctx := context.Background()

	ref := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}.Page(1)
	stagePage(t, blobs, ref, "text")

	chunks, err := chunker.ChunkPages(ctx, []core.PageRef{ref})
	assert.Empty(t, chunks)
	assert.ErrorIs(t, err, splitErr)

	// Deletion is unconditional
	_, err = blobs.Get(ctx, "staging", ref.StagedKey())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// failingDeleteStore fails every Delete but otherwise behaves like the
// wrapped store.
type failingDeleteStore struct {
	storage.BlobStore
	err error
}

func (s *failingDeleteStore) Delete(ctx context.Context, bucket, key string) error {
	return s.err
}

func TestChunkPages_DeleteFailure(t *testing.T) {
	blobs, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	delErr := errors.New("staging store down")
	store := &failingDeleteStore{BlobStore: blobs, err: delErr}
	chunker, err := NewChunker(store, "staging", &stubSplitter{})
	require.NoError(t, err)

	ref := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}.Page(1)
	stagePage(t, blobs, ref, "text")

	chunks, err := chunker.ChunkPages(context.Background(), []core.PageRef{ref})
	assert.Empty(t, chunks, "a page that cannot be cleaned up yields no chunks")

	var stagingErr *core.StagingIOError
	require.ErrorAs(t, err, &stagingErr)
	assert.Equal(t, ref.StagedKey(), stagingErr.Key)
	assert.ErrorIs(t, err, delErr)
}

func TestChunkPages_DeleteFailureAfterSplitFailure(t *testing.T) {
	blobs, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	splitErr := errors.New("splitter broke")
	delErr := errors.New("staging store down")
	store := &failingDeleteStore{BlobStore: blobs, err: delErr}
	chunker, err := NewChunker(store, "staging", &stubSplitter{err: splitErr})
	require.NoError(t, err)

	ref := core.DocumentRef{Topic: "physics", Filename: "notes.txt"}.Page(1)
	stagePage(t, blobs, ref, "text")

	_, err = chunker.ChunkPages(context.Background(), []core.PageRef{ref})

	// Both failures surface
	assert.ErrorIs(t, err, splitErr)
	assert.ErrorIs(t, err, delErr)
}

func TestNewChunker_Validation(t *testing.T) {
	blobs, _, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewChunker(nil, "staging", &stubSplitter{})
	assert.ErrorIs(t, err, ErrStagingStoreRequired)

	_, err = NewChunker(blobs, "", &stubSplitter{})
	assert.ErrorIs(t, err, ErrStagingBucketRequired)

	_, err = NewChunker(blobs, "staging", nil)
	assert.ErrorIs(t, err, ErrSplitterRequired)
}
