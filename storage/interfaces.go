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

package storage

import (
	"context"

	"github.com/poiesic/metadex/core"
)

// DocumentRepository holds the indexed documents of one collection.
// Implementations must preserve insertion order and be safe for concurrent use.
type DocumentRepository interface {
	// ReplaceDocuments atomically swaps the stored collection for docs.
	// An empty slice clears the collection.
	ReplaceDocuments(ctx context.Context, docs []core.IndexedDocument) error

	// ForEachDocument calls fn for every stored document in insertion order.
	// Iteration stops at the first error returned by fn, which is passed through.
	ForEachDocument(ctx context.Context, fn func(doc core.IndexedDocument) error) error

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// Close releases the repository and its backend.
	Close() error
}
