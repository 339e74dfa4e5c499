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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentID indicates the ID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrDuplicateDocumentID indicates two documents in one batch share an ID.
	ErrDuplicateDocumentID = errors.New("duplicate document id")

	// ErrCorruptRecord indicates an encoded record could not be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)
