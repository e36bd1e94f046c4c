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

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/nikhilsinclair/Quantum-AI/chunk"
	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/extract"
	"github.com/nikhilsinclair/Quantum-AI/index"
)

// Lister enumerates object keys under a prefix in a bucket. It is the
// narrow slice of blob storage the pipeline needs for discovery.
type Lister interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Pipeline drives a full ingestion run for one topic: enumerate documents
// in source storage, extract and chunk each one, then synchronize the
// aggregate chunk set into the vector index.
type Pipeline struct {
	source       Lister
	sourceBucket string
	extractor    *extract.Extractor
	chunker      *chunk.Chunker
	synchronizer index.Synchronizer
	pool         *ants.Pool
	filter       Predicate
	monitor      Monitor
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets how many documents are processed concurrently.
// Default is 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithFilter replaces the document selection predicate. Default is
// IsIngestible.
func WithFilter(filter Predicate) Option {
	return func(p *Pipeline) error {
		if filter != nil {
			p.filter = filter
		}
		return nil
	}
}

// WithMonitor attaches a progress monitor.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor != nil {
			p.monitor = monitor
		}
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewPipeline creates an ingestion Pipeline over the given stages.
func NewPipeline(source Lister, sourceBucket string, extractor *extract.Extractor, chunker *chunk.Chunker, synchronizer index.Synchronizer, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, ErrSourceStoreRequired
	}
	if sourceBucket == "" {
		return nil, ErrSourceBucketRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if synchronizer == nil {
		return nil, ErrSynchronizerRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		source:       source,
		sourceBucket: sourceBucket,
		extractor:    extractor,
		chunker:      chunker,
		synchronizer: synchronizer,
		pool:         pool,
		filter:       IsIngestible,
		monitor:      noopMonitor{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Run ingests every document currently under the topic. Documents that fail
// extraction or chunking are skipped with a warning; the run only fails if
// enumeration or final synchronization fails. An empty topic tree still
// synchronizes, which purges previously indexed content for it.
func (p *Pipeline) Run(ctx context.Context, topic string) (index.Summary, error) {
	if topic == "" {
		return index.Summary{}, ErrTopicRequired
	}

	docs, err := p.enumerate(ctx, topic)
	if err != nil {
		return index.Summary{}, fmt.Errorf("enumerate topic %q: %w", topic, err)
	}
	p.monitor.Start(topic, docs)
	p.logger.Info("ingestion started", "topic", topic, "documents", len(docs))

	chunks := p.processAll(ctx, docs)

	summary, err := p.synchronizer.Sync(ctx, chunks)
	if err != nil {
		return index.Summary{}, err
	}

	p.monitor.Finish(summary)
	return summary, nil
}

// enumerate lists the topic subtree and keeps only ingestible documents.
func (p *Pipeline) enumerate(ctx context.Context, topic string) ([]core.DocumentRef, error) {
	keys, err := p.source.List(ctx, p.sourceBucket, topic+"/")
	if err != nil {
		return nil, err
	}

	var docs []core.DocumentRef
	for _, key := range keys {
		if !p.filter(key) {
			continue
		}
		docs = append(docs, core.DocumentRef{Topic: topic, Filename: path.Base(key)})
	}
	return docs, nil
}

// processAll extracts and chunks the documents on the worker pool and
// returns the aggregate chunk set in submission order of completion.
func (p *Pipeline) processAll(ctx context.Context, docs []core.DocumentRef) []core.Chunk {
	var mu sync.Mutex
	var wg sync.WaitGroup
	var chunks []core.Chunk

	for _, doc := range docs {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			docChunks, err := p.processDocument(ctx, doc)
			if err != nil {
				p.logger.Warn("skipping document", "key", doc.Key(), "err", err)
				p.monitor.DocumentFailed(doc, err)
				return
			}
			mu.Lock()
			chunks = append(chunks, docChunks...)
			mu.Unlock()
			p.monitor.DocumentDone(doc, len(docChunks))
		}
		if err := p.pool.Submit(task); err != nil {
			// A released or overloaded pool still gets the work done.
			task()
		}
	}
	wg.Wait()

	return chunks
}

func (p *Pipeline) processDocument(ctx context.Context, doc core.DocumentRef) ([]core.Chunk, error) {
	refs, err := p.extractor.ExtractPages(ctx, doc)
	if err != nil {
		return nil, err
	}

	chunks, err := p.chunker.ChunkPages(ctx, refs)
	if err != nil {
		// Pages that chunked fine are still worth indexing.
		p.logger.Warn("partial chunking", "key", doc.Key(), "chunks", len(chunks), "err", err)
	}
	return chunks, nil
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
