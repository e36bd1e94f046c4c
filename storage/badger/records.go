package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

// RecordManager implements storage.RecordManager for BadgerDB. One entry is
// kept per indexed chunk identity; entry timestamps drive the full-cleanup
// deletion of stale chunks.
type RecordManager struct {
	backend *Backend
}

var _ storage.RecordManager = (*RecordManager)(nil)

// NewRecordManager creates a new RecordManager on the given backend.
func NewRecordManager(backend *Backend) *RecordManager {
	return &RecordManager{backend: backend}
}

// Exists reports, for each ID, whether an entry is recorded.
func (m *RecordManager) Exists(ctx context.Context, ids []string) ([]bool, error) {
	result := make([]bool, len(ids))
	err := m.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			_, err := tx.Get(makeIndexEntryKey(id))
			switch err {
			case nil:
				result[i] = true
			case badger.ErrKeyNotFound:
				result[i] = false
			default:
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update records or refreshes entries for the given IDs.
func (m *RecordManager) Update(ctx context.Context, ids []string, groupIDs []string, at time.Time) error {
	if len(ids) != len(groupIDs) {
		return fmt.Errorf("%w: %d ids for %d group ids", storage.ErrInvalidQuery, len(ids), len(groupIDs))
	}

	return m.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			entry := &core.IndexEntry{
				GroupID:   groupIDs[i],
				UpdatedAt: at.UTC(),
			}
			if err := tx.Set(makeIndexEntryKey(id), storage.MarshalIndexEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListBefore returns the IDs of all entries last updated strictly before
// cutoff.
func (m *RecordManager) ListBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	strip := len(makeIndexEntryKey(""))

	var ids []string
	err := m.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexEntryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var entry *core.IndexEntry
			err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalIndexEntry(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}

			if entry.UpdatedAt.Before(cutoff) {
				ids = append(ids, string(item.Key()[strip:]))
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes entries by their IDs. Missing IDs are ignored.
func (m *RecordManager) Delete(ctx context.Context, ids ...string) error {
	return m.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeIndexEntryKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close releases resources. The shared backend stays open; it is closed by
// its owner.
func (m *RecordManager) Close() error {
	return nil
}
