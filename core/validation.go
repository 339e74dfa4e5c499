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

package core

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ID must not be empty or whitespace
//
// NOT validated:
//   - Title (an empty title simply yields default metadata)
//   - Content (an empty content never matches a query)
func ValidateDocument(doc Document) error {
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}
	return nil
}

// ValidateDocuments validates every document and checks that IDs are unique
// within the batch. All problems are reported together.
func ValidateDocuments(docs []Document) error {
	var errs []error
	seen := make(map[string]int, len(docs))
	for i, doc := range docs {
		if err := ValidateDocument(doc); err != nil {
			errs = append(errs, fmt.Errorf("document %d: %w", i, err))
			continue
		}
		if first, ok := seen[doc.ID]; ok {
			errs = append(errs, fmt.Errorf("document %d: %w: %q (first seen at %d)",
				i, ErrDuplicateDocumentID, doc.ID, first))
			continue
		}
		seen[doc.ID] = i
	}
	return errors.Join(errs...)
}
