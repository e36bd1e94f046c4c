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

package quantumai

import (
	"log/slog"

	"github.com/nikhilsinclair/Quantum-AI/ai"
	"github.com/nikhilsinclair/Quantum-AI/ai/openai"
	"github.com/nikhilsinclair/Quantum-AI/chunk"
	"github.com/nikhilsinclair/Quantum-AI/extract"
	"github.com/nikhilsinclair/Quantum-AI/index"
	"github.com/nikhilsinclair/Quantum-AI/ingest"
	"github.com/nikhilsinclair/Quantum-AI/splitter"
	"github.com/nikhilsinclair/Quantum-AI/storage"
	"github.com/nikhilsinclair/Quantum-AI/storage/badger"
)

// System bundles the storage backend, the AI provider, and the index
// stores behind one handle. It is the assembly point for ingestion
// pipelines.
type System struct {
	backend  *badger.Backend
	blobs    storage.BlobStore
	vectors  storage.VectorStore
	records  storage.RecordManager
	provider ai.Provider
	source   storage.BlobStore
	splitter splitter.Splitter
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	source   storage.BlobStore
	splitter splitter.Splitter
	logger   *slog.Logger
}

// WithAIConfig sets the AI provider configuration. Ignored when
// WithProvider is also given.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from configuration.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithSourceStore sets the blob store documents are read from, for example
// a cloud object store. Default is the local backend.
func WithSourceStore(source storage.BlobStore) SystemOption {
	return func(o *systemOptions) {
		o.source = source
	}
}

// WithSplitter replaces the default semantic splitter used by pipelines.
func WithSplitter(split splitter.Splitter) SystemOption {
	return func(o *systemOptions) {
		o.splitter = split
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) SystemOption {
	return func(o *systemOptions) {
		o.logger = logger
	}
}

// NewSystem opens the backend at filePath and wires up the stores and the
// AI provider. An empty filePath opens an in-memory backend, which is
// useful in tests.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	blobs := badger.NewBlobStore(backend)
	source := options.source
	if source == nil {
		source = blobs
	}

	return &System{
		backend:  backend,
		blobs:    blobs,
		vectors:  badger.NewVectorStore(backend),
		records:  badger.NewRecordManager(backend),
		provider: provider,
		source:   source,
		splitter: options.splitter,
		logger:   options.logger,
	}, nil
}

// Close shuts down the AI provider and the storage backend.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.source.Close(); err != nil {
		s.logger.Error("error closing source store", "err", err)
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *System) BlobStore() storage.BlobStore {
	return s.blobs
}

func (s *System) VectorStore() storage.VectorStore {
	return s.vectors
}

func (s *System) RecordManager() storage.RecordManager {
	return s.records
}

func (s *System) Provider() ai.Provider {
	return s.provider
}

// NewPipeline assembles an ingestion pipeline reading documents from
// sourceBucket in the source store and staging page artifacts in
// stagingBucket on the local backend.
func (s *System) NewPipeline(sourceBucket, stagingBucket string, opts ...ingest.Option) (*ingest.Pipeline, error) {
	split := s.splitter
	if split == nil {
		var err error
		split, err = splitter.NewSemantic(s.provider.Embedder(), splitter.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
	}

	extractor, err := extract.NewExtractor(s.source, sourceBucket, s.blobs, stagingBucket,
		extract.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	chunker, err := chunk.NewChunker(s.blobs, stagingBucket, split, chunk.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	indexer, err := index.NewIndexer(s.provider.Embedder(), s.vectors, s.records,
		index.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	return ingest.NewPipeline(s.source, sourceBucket, extractor, chunker, indexer,
		append([]ingest.Option{ingest.WithLogger(s.logger)}, opts...)...)
}
