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


package core

import (
	"errors"
	"fmt"
)

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidDocumentRef indicates a DocumentRef failed validation.
	ErrInvalidDocumentRef = errors.New("invalid document reference")

	// ErrInvalidPageRef indicates a PageRef failed validation.
	ErrInvalidPageRef = errors.New("invalid page reference")

	// ErrEmptyText indicates the chunk Text field is empty.
	ErrEmptyText = errors.New("chunk text cannot be empty")

	// ErrEmptySource indicates the chunk Source field is empty.
	ErrEmptySource = errors.New("chunk source cannot be empty")

	// ErrEmptyDocID indicates the chunk DocID field is empty.
	ErrEmptyDocID = errors.New("chunk doc id cannot be empty")

	// ErrEmptyTopic indicates the Topic field is empty.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrInvalidPageNumber indicates a page number below 1.
	ErrInvalidPageNumber = errors.New("page number must be at least 1")
)

// ExtractionError reports a document that could not be downloaded or parsed.
// It is recoverable at the run level: the document is skipped and the run
// continues with the next one.
type ExtractionError struct {
	Key string // source-storage key of the offending document
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Key, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StagingIOError reports a staged page artifact that could not be read or
// deleted. Chunks already produced from other pages are unaffected.
type StagingIOError struct {
	Key string // staging-storage key of the offending page artifact
	Err error
}

func (e *StagingIOError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Key, e.Err)
}

func (e *StagingIOError) Unwrap() error { return e.Err }

// SynchronizationError reports a failed synchronization pass. It is fatal to
// the run: no partial index state is committed past it.
type SynchronizationError struct {
	Err error
}

func (e *SynchronizationError) Error() string {
	return fmt.Sprintf("synchronize: %v", e.Err)
}

func (e *SynchronizationError) Unwrap() error { return e.Err }
