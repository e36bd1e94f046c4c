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


package badger

import "github.com/nikhilsinclair/Quantum-AI/storage"

// NewMemoryStores creates an in-memory blob store, vector store, and record
// manager for testing. Caller must close the backend when done.
func NewMemoryStores() (storage.BlobStore, storage.VectorStore, storage.RecordManager, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return NewBlobStore(backend), NewVectorStore(backend), NewRecordManager(backend), backend, nil
}
