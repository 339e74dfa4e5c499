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
	"fmt"

	"github.com/poiesic/metadex/core"
)

// MarshalIndexedDocument serializes an IndexedDocument to bytes.
func MarshalIndexedDocument(doc *core.IndexedDocument) []byte {
	buf := make([]byte, core.IndexedDocumentMUS.Size(*doc))
	core.IndexedDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalIndexedDocument deserializes an IndexedDocument from bytes.
func UnmarshalIndexedDocument(data []byte) (*core.IndexedDocument, error) {
	doc, _, err := core.IndexedDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}
