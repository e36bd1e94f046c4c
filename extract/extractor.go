package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

const defaultUploadLimit = 8

// Extractor pulls a document blob from source storage, parses it into
// pages, and stages one text blob per page in staging storage. Page
// numbering starts at 1 and is gap-free; a failed extraction stages nothing
// usable and reports an *core.ExtractionError naming the source key.
type Extractor struct {
	source        storage.BlobStore
	sourceBucket  string
	staging       storage.BlobStore
	stagingBucket string
	parsers       *Registry
	uploadLimit   int
	logger        *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithRegistry replaces the default parser registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Extractor) error {
		if registry != nil {
			e.parsers = registry
		}
		return nil
	}
}

// WithUploadLimit bounds how many staged pages upload concurrently.
// Default is 8.
func WithUploadLimit(n int) Option {
	return func(e *Extractor) error {
		if n < 1 {
			n = 1
		}
		e.uploadLimit = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger != nil {
			e.logger = logger
		}
		return nil
	}
}

// NewExtractor creates an Extractor reading documents from
// source/sourceBucket and staging page artifacts in staging/stagingBucket.
func NewExtractor(source storage.BlobStore, sourceBucket string, staging storage.BlobStore, stagingBucket string, opts ...Option) (*Extractor, error) {
	if source == nil {
		return nil, ErrSourceStoreRequired
	}
	if sourceBucket == "" {
		return nil, ErrSourceBucketRequired
	}
	if staging == nil {
		return nil, ErrStagingStoreRequired
	}
	if stagingBucket == "" {
		return nil, ErrStagingBucketRequired
	}

	e := &Extractor{
		source:        source,
		sourceBucket:  sourceBucket,
		staging:       staging,
		stagingBucket: stagingBucket,
		parsers:       NewRegistry(),
		uploadLimit:   defaultUploadLimit,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ExtractPages converts each page of the document into a staged text blob
// and returns the page references in page order. The count of returned
// references always equals the document's page count.
func (e *Extractor) ExtractPages(ctx context.Context, doc core.DocumentRef) ([]core.PageRef, error) {
	if err := core.ValidateDocumentRef(doc); err != nil {
		return nil, &core.ExtractionError{Key: doc.Key(), Err: err}
	}

	ext := path.Ext(doc.Filename)
	parser, ok := e.parsers.Lookup(ext)
	if !ok {
		return nil, &core.ExtractionError{Key: doc.Key(), Err: fmt.Errorf("%w: %q", ErrNoParser, ext)}
	}

	pages, err := e.parse(ctx, doc, ext, parser)
	if err != nil {
		return nil, &core.ExtractionError{Key: doc.Key(), Err: err}
	}

	refs, err := e.stage(ctx, doc, pages)
	if err != nil {
		return nil, &core.ExtractionError{Key: doc.Key(), Err: err}
	}
	return refs, nil
}

// parse downloads the document to a scratch file and runs the parser on it.
// The scratch directory is removed on every exit path.
func (e *Extractor) parse(ctx context.Context, doc core.DocumentRef, ext string, parser Parser) ([]string, error) {
	tempDir, err := os.MkdirTemp("", "quantumai-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	data, err := e.source.Get(ctx, e.sourceBucket, doc.Key())
	if err != nil {
		return nil, fmt.Errorf("download document: %w", err)
	}

	localPath := filepath.Join(tempDir, "source"+ext)
	if err := os.WriteFile(localPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write scratch file: %w", err)
	}

	pages, err := parser.Pages(localPath)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return pages, nil
}

// stage uploads one blob per page. On any upload failure, already-staged
// pages are cleaned up best-effort so a failed extraction leaves zero
// usable pages behind.
func (e *Extractor) stage(ctx context.Context, doc core.DocumentRef, pages []string) ([]core.PageRef, error) {
	refs := make([]core.PageRef, len(pages))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.uploadLimit)
	for i, text := range pages {
		ref := doc.Page(i + 1)
		refs[i] = ref
		eg.Go(func() error {
			if err := e.staging.Put(gctx, e.stagingBucket, ref.StagedKey(), []byte(text)); err != nil {
				return fmt.Errorf("stage page %d: %w", ref.Number, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		e.discard(ctx, refs)
		return nil, err
	}

	e.logger.Debug("document staged", "key", doc.Key(), "pages", len(refs))
	return refs, nil
}

// discard removes staged pages after a failed extraction.
func (e *Extractor) discard(ctx context.Context, refs []core.PageRef) {
	for _, ref := range refs {
		if err := e.staging.Delete(ctx, e.stagingBucket, ref.StagedKey()); err != nil {
			e.logger.Warn("failed to clean up staged page", "key", ref.StagedKey(), "err", err)
		}
	}
}
