package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

// VectorStore implements storage.VectorStore for BadgerDB. Records are keyed
// by identity hash; a secondary index keyed by source URI serves the
// grouping queries the synchronization pass relies on.
type VectorStore struct {
	backend *Backend
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore creates a new VectorStore on the given backend.
func NewVectorStore(backend *Backend) *VectorStore {
	return &VectorStore{backend: backend}
}

// Upsert inserts or replaces index records by their ID.
func (s *VectorStore) Upsert(ctx context.Context, records ...*core.IndexRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.ID == "" {
				return fmt.Errorf("%w: record ID is empty", storage.ErrInvalidQuery)
			}
			if err := tx.Set(makeIndexRecordKey(record.ID), storage.MarshalIndexRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(makeRecordSourceKey(record.Source, record.ID), []byte(record.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Delete removes index records and their source-index entries by ID.
// Missing IDs are ignored.
func (s *VectorStore) Delete(ctx context.Context, ids ...string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := s.readRecord(tx, id)
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			if err := tx.Delete(makeIndexRecordKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeRecordSourceKey(record.Source, id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Get retrieves a single index record by ID.
func (s *VectorStore) Get(ctx context.Context, id string) (*core.IndexRecord, error) {
	var record *core.IndexRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = s.readRecord(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return record, nil
}

// QueryBySource returns all index records whose Source equals source.
func (s *VectorStore) QueryBySource(ctx context.Context, source string) ([]*core.IndexRecord, error) {
	var records []*core.IndexRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialRecordSourceKey(source)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}
			record, err := s.readRecord(tx, id)
			if err != nil {
				return err
			}
			if record == nil {
				// Dangling source-index entry; skip rather than fail the query.
				continue
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close releases resources. The shared backend stays open; it is closed by
// its owner.
func (s *VectorStore) Close() error {
	return nil
}

// readRecord reads and unmarshals an index record within a transaction.
// Returns nil without error if the record doesn't exist.
func (s *VectorStore) readRecord(tx *badger.Txn, id string) (*core.IndexRecord, error) {
	item, err := tx.Get(makeIndexRecordKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.IndexRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalIndexRecord(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return record, nil
}
