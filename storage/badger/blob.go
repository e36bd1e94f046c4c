package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/nikhilsinclair/Quantum-AI/storage"
)

// BlobStore implements storage.BlobStore on a BadgerDB backend. It gives the
// pipeline S3-like bucket/key semantics without an external service, which is
// what local topics and tests run on.
type BlobStore struct {
	backend *Backend
}

var _ storage.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a new BlobStore on the given backend.
func NewBlobStore(backend *Backend) *BlobStore {
	return &BlobStore{backend: backend}
}

// Get returns the contents of the blob at bucket/key.
func (s *BlobStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var data []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBlobKey(bucket, key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %s/%s", storage.ErrNotFound, bucket, key)
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes data to bucket/key, overwriting any existing blob.
func (s *BlobStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeBlobKey(bucket, key), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the blob at bucket/key. Missing blobs are not an error,
// matching object-storage delete semantics.
func (s *BlobStore) Delete(ctx context.Context, bucket, key string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeBlobKey(bucket, key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// List returns all keys in the bucket starting with prefix, in lexicographic
// order.
func (s *BlobStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	scanPrefix := makePartialBlobKey(bucket, prefix)
	strip := len(makePartialBlobKey(bucket, ""))

	var keys []string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = scanPrefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			keys = append(keys, string(key[strip:]))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close releases resources. The shared backend stays open; it is closed by
// its owner.
func (s *BlobStore) Close() error {
	return nil
}
