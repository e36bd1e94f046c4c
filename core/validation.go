package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Source must not be empty
//   - DocID must not be empty
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySource)
	}

	if chunk.DocID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocID)
	}

	return nil
}

// ValidateDocumentRef validates a DocumentRef according to domain rules.
//
// Validation rules:
//   - Topic must not be empty
//   - Filename must not be empty
func ValidateDocumentRef(doc DocumentRef) error {
	if doc.Topic == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRef, ErrEmptyTopic)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRef, ErrEmptyFilename)
	}

	return nil
}

// ValidatePageRef validates a PageRef according to domain rules.
//
// Validation rules:
//   - the embedded DocumentRef must be valid
//   - Number must be 1 or greater (page numbering is 1-based and gap-free)
func ValidatePageRef(page PageRef) error {
	if err := ValidateDocumentRef(page.Document()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPageRef, err)
	}

	if page.Number < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidPageRef, ErrInvalidPageNumber, page.Number)
	}

	return nil
}
