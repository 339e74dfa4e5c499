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

package ai

import "context"

// Field labels a MetadataExtractor tags its spans with.
const (
	LabelServiceName      = "service_name"
	LabelVersionNumber    = "version_number"
	LabelDocumentCategory = "document_category"
	LabelRateLimits       = "rate_limits"
	LabelDeprecatedItems  = "deprecated_items"
)

// Labels lists every field label in prompt order.
var Labels = []string{
	LabelServiceName,
	LabelVersionNumber,
	LabelDocumentCategory,
	LabelRateLimits,
	LabelDeprecatedItems,
}

// Extraction is one labeled span returned by a MetadataExtractor.
type Extraction struct {
	// Class is one of the field labels, e.g. LabelServiceName.
	Class string

	// Text is the extracted text for the field.
	Text string

	// Attributes carries optional key/value annotations for the span.
	Attributes map[string]string
}

// Example is a worked example shown to the model: an input text and the
// extractions expected for it.
type Example struct {
	Text        string
	Extractions []Extraction
}

// Request describes one extraction call.
type Request struct {
	// Text is the document content to extract from.
	Text string

	// TaskDescription names the target fields and their semantics.
	TaskDescription string

	// Examples demonstrate the expected output shape.
	Examples []Example

	// Model overrides the configured model identifier when non-empty.
	Model string

	// Passes is the number of extraction passes; values below 1 mean one pass.
	Passes int
}

// MetadataExtractor extracts labeled metadata spans from free text.
// Implementations must be thread-safe for concurrent use.
type MetadataExtractor interface {
	// ExtractMetadata runs the request and returns the labeled spans found.
	// Returns an empty slice if nothing was found.
	// Returns an error if the capability failed or produced malformed output.
	ExtractMetadata(ctx context.Context, req Request) ([]Extraction, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// MetadataExtractor returns the metadata extraction service.
	// The returned MetadataExtractor is safe for concurrent use.
	MetadataExtractor() MetadataExtractor

	// Ping issues a minimal request to check that the capability answers.
	Ping(ctx context.Context) error

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
