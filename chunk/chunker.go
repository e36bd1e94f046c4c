// Copyright 2025 Quantum AI contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chunk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/splitter"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

// Chunker turns staged page blobs into semantic chunks. Every page gets a
// fresh document id, chunks point back at the parent document's source URI,
// and staged blobs are deleted once read regardless of splitting outcome.
type Chunker struct {
	staging       storage.BlobStore
	stagingBucket string
	splitter      splitter.Splitter
	docID         func() string
	logger        *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithDocIDFunc overrides document id generation. Default is a random UUID
// per page.
func WithDocIDFunc(fn func() string) Option {
	return func(c *Chunker) error {
		if fn != nil {
			c.docID = fn
		}
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// NewChunker creates a Chunker reading staged pages from
// staging/stagingBucket and splitting them with split.
func NewChunker(staging storage.BlobStore, stagingBucket string, split splitter.Splitter, opts ...Option) (*Chunker, error) {
	if staging == nil {
		return nil, ErrStagingStoreRequired
	}
	if stagingBucket == "" {
		return nil, ErrStagingBucketRequired
	}
	if split == nil {
		return nil, ErrSplitterRequired
	}

	c := &Chunker{
		staging:       staging,
		stagingBucket: stagingBucket,
		splitter:      split,
		docID:         uuid.NewString,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ChunkPages chunks each staged page and returns the aggregate. A failure
// on one page does not stop the others; per-page errors are joined into the
// returned error alongside the chunks that did succeed.
func (c *Chunker) ChunkPages(ctx context.Context, refs []core.PageRef) ([]core.Chunk, error) {
	var chunks []core.Chunk
	var errs []error

	for _, ref := range refs {
		pageChunks, err := c.processPage(ctx, ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chunks = append(chunks, pageChunks...)
	}

	return chunks, errors.Join(errs...)
}

func (c *Chunker) processPage(ctx context.Context, ref core.PageRef) ([]core.Chunk, error) {
	key := ref.StagedKey()

	data, err := c.staging.Get(ctx, c.stagingBucket, key)
	if err != nil {
		return nil, &core.StagingIOError{Key: key, Err: fmt.Errorf("read staged page: %w", err)}
	}

	source := ref.Source(c.stagingBucket)
	docID := c.docID()

	segments, splitErr := c.splitter.Split(ctx, string(data))

	// The staged blob is transient. It goes away whether or not splitting
	// worked, so a later run never re-chunks a stale page.
	if err := c.staging.Delete(ctx, c.stagingBucket, key); err != nil {
		delErr := &core.StagingIOError{Key: key, Err: fmt.Errorf("delete staged page: %w", err)}
		if splitErr != nil {
			return nil, errors.Join(splitErr, delErr)
		}
		return nil, delErr
	}
	if splitErr != nil {
		return nil, fmt.Errorf("split page %q: %w", key, splitErr)
	}

	chunks := make([]core.Chunk, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			c.logger.Warn("dropping empty chunk", "key", key)
			continue
		}
		chunks = append(chunks, core.Chunk{
			Text:   segment,
			Source: source,
			DocID:  docID,
		})
	}

	c.logger.Debug("page chunked", "key", key, "chunks", len(chunks))
	return chunks, nil
}
