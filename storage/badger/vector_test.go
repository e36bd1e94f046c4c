package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/nikhilsinclair/Quantum-AI/core"
	"github.com/nikhilsinclair/Quantum-AI/storage"
)

func newTestRecord(id, source, text string) *core.IndexRecord {
	return &core.IndexRecord{
		ID:     id,
		Source: source,
		DocID:  "doc-" + id,
		Text:   text,
		Vector: []float32{0.1, 0.2, 0.3},
	}
}

func TestVectorStoreUpsertGet(t *testing.T) {
	_, vectors, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	record := newTestRecord("r1", "storage://staging/physics/documents/a.pdf", "first chunk")

	if err := vectors.Upsert(ctx, record); err != nil {
		t.Fatalf("Failed to upsert record: %v", err)
	}

	got, err := vectors.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.Text != "first chunk" || got.Source != record.Source || got.DocID != record.DocID {
		t.Fatalf("Got %+v, want %+v", got, record)
	}
	if len(got.Vector) != 3 {
		t.Fatalf("Expected 3 vector dims, got %d", len(got.Vector))
	}

	// Upsert replaces
	record.Text = "updated chunk"
	if err := vectors.Upsert(ctx, record); err != nil {
		t.Fatalf("Failed to re-upsert record: %v", err)
	}
	got, err = vectors.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.Text != "updated chunk" {
		t.Fatalf("Expected updated text, got %q", got.Text)
	}
}

func TestVectorStoreGetMissing(t *testing.T) {
	_, vectors, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	_, err = vectors.Get(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestVectorStoreQueryBySource(t *testing.T) {
	_, vectors, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	sourceA := "storage://staging/physics/documents/a.pdf"
	sourceB := "storage://staging/physics/documents/b.pdf"

	err = vectors.Upsert(ctx,
		newTestRecord("a1", sourceA, "a one"),
		newTestRecord("a2", sourceA, "a two"),
		newTestRecord("b1", sourceB, "b one"),
	)
	if err != nil {
		t.Fatalf("Failed to upsert records: %v", err)
	}

	records, err := vectors.QueryBySource(ctx, sourceA)
	if err != nil {
		t.Fatalf("Failed to query by source: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records for source A, got %d", len(records))
	}
	for _, record := range records {
		if record.Source != sourceA {
			t.Errorf("Record %s has source %q, want %q", record.ID, record.Source, sourceA)
		}
	}

	// A source that is a prefix of another must not match its records.
	records, err = vectors.QueryBySource(ctx, "storage://staging/physics/documents/a")
	if err != nil {
		t.Fatalf("Failed to query by source: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("Expected 0 records for prefix source, got %d", len(records))
	}
}

func TestVectorStoreDelete(t *testing.T) {
	_, vectors, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	source := "storage://staging/physics/documents/a.pdf"

	err = vectors.Upsert(ctx,
		newTestRecord("a1", source, "a one"),
		newTestRecord("a2", source, "a two"),
	)
	if err != nil {
		t.Fatalf("Failed to upsert records: %v", err)
	}

	if err := vectors.Delete(ctx, "a1", "missing"); err != nil {
		t.Fatalf("Failed to delete records: %v", err)
	}

	if _, err := vectors.Get(ctx, "a1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// The source index must shrink with the record.
	records, err := vectors.QueryBySource(ctx, source)
	if err != nil {
		t.Fatalf("Failed to query by source: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a2" {
		t.Fatalf("Expected only a2 to remain, got %v", records)
	}
}
