package core

import (
	"testing"
)

func TestChunkID(t *testing.T) {
	tests := []struct {
		name   string
		source string
		text   string
	}{
		{
			name:   "plain chunk",
			source: "storage://staging/physics/documents/syllabus.pdf",
			text:   "Course grading is 40% homework and 60% exams.",
		},
		{
			name:   "empty text",
			source: "storage://staging/physics/documents/syllabus.pdf",
			text:   "",
		},
		{
			name:   "unicode text",
			source: "storage://staging/math/documents/notes.txt",
			text:   "∀x∈ℝ: x² ≥ 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := ChunkID(tt.source, tt.text)
			id2 := ChunkID(tt.source, tt.text)

			if id1 != id2 {
				t.Errorf("ChunkID() produced different IDs for same input: %s vs %s", id1, id2)
			}
			if len(id1) != 32 {
				t.Errorf("ChunkID() returned %d hex chars, want 32", len(id1))
			}
		})
	}
}

func TestChunkID_Different(t *testing.T) {
	source := "storage://staging/physics/documents/syllabus.pdf"

	if ChunkID(source, "text one") == ChunkID(source, "text two") {
		t.Error("ChunkID() produced same ID for different texts")
	}
	if ChunkID(source, "shared text") == ChunkID("storage://staging/other/documents/a.pdf", "shared text") {
		t.Error("ChunkID() produced same ID for different sources")
	}
	// The separator keeps (source, text) boundaries unambiguous.
	if ChunkID("ab", "c") == ChunkID("a", "bc") {
		t.Error("ChunkID() ignored the source/text boundary")
	}
}

func TestChunkID_IgnoresDocID(t *testing.T) {
	a := Chunk{Text: "same text", Source: "storage://staging/t/documents/f.pdf", DocID: "doc-1"}
	b := Chunk{Text: "same text", Source: "storage://staging/t/documents/f.pdf", DocID: "doc-2"}

	if a.ID() != b.ID() {
		t.Error("Chunk.ID() should not depend on DocID")
	}
}

func TestDocumentRefKeys(t *testing.T) {
	doc := DocumentRef{Topic: "physics", Filename: "syllabus.pdf"}

	if got, want := doc.Key(), "physics/documents/syllabus.pdf"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
	if got, want := doc.Source("staging"), "storage://staging/physics/documents/syllabus.pdf"; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestPageRef(t *testing.T) {
	doc := DocumentRef{Topic: "physics", Filename: "syllabus.pdf"}
	page := doc.Page(3)

	if got, want := page.StagedKey(), "physics/documents/syllabus.pdf_page_3.txt"; got != want {
		t.Errorf("StagedKey() = %q, want %q", got, want)
	}
	if page.Document() != doc {
		t.Errorf("Document() = %+v, want %+v", page.Document(), doc)
	}
	if got, want := page.Source("staging"), doc.Source("staging"); got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}
