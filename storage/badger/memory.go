// Copyright 2025 Poiesic Systems
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

import (
	"log/slog"

	"github.com/poiesic/metadex/storage"
)

// NewMemoryRepository opens an in-memory backend and wraps it in a DocumentRepository.
// Closing the repository closes the backend.
func NewMemoryRepository(logger *slog.Logger) (storage.DocumentRepository, error) {
	backend, err := OpenMemoryBackend(logger)
	if err != nil {
		return nil, err
	}

	repo, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return repo, nil
}
