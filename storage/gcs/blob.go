package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	istorage "github.com/nikhilsinclair/Quantum-AI/storage"
)

const (
	defaultMaxRetries   = 4
	defaultBaseDelay    = 1 * time.Second
	defaultWriteTimeout = 50 * time.Second
)

// Store implements the pipeline's blob-store capability on Google Cloud
// Storage. Writes are retried with exponential backoff; GCS object writes
// only become visible when the writer is closed, so a failed attempt leaves
// no partial blob behind.
type Store struct {
	client       *storage.Client
	maxRetries   int
	baseDelay    time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
}

var _ istorage.BlobStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithMaxRetries sets the maximum number of upload attempts.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store using application-default credentials.
func NewStore(ctx context.Context, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	s := &Store{
		client:       client,
		maxRetries:   defaultMaxRetries,
		baseDelay:    defaultBaseDelay,
		writeTimeout: defaultWriteTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the contents of the object at bucket/key.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	reader, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", istorage.ErrNotFound, bucket, key)
		}
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucket, key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put writes data to bucket/key, retrying transient failures with
// exponential backoff.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte) error {
	backoff := s.baseDelay
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.write(ctx, bucket, key, data)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == s.maxRetries {
			break
		}

		s.logger.Warn("upload failed, will retry",
			"object", key,
			"attempt", attempt,
			"maxRetries", s.maxRetries,
			"backoff", backoff.String(),
			"error", err,
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("upload gs://%s/%s failed after %d attempts: %w", bucket, key, s.maxRetries, lastErr)
}

func (s *Store) write(ctx context.Context, bucket, key string, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	writer := s.client.Bucket(bucket).Object(key).NewWriter(writeCtx)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize write: %w", err)
	}
	return nil
}

// Delete removes the object at bucket/key. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	err := s.client.Bucket(bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete gs://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// List returns all object keys in the bucket starting with prefix. The GCS
// iterator handles pagination internally.
func (s *Store) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gs://%s/%s: %w", bucket, prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
