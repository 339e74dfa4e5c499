package mock

import (
	"context"

	"github.com/poiesic/metadex/ai"
)

// MockMetadataExtractor is a test double for ai.MetadataExtractor.
// It allows custom behavior injection via function fields.
type MockMetadataExtractor struct {
	// ExtractMetadataFunc is called by ExtractMetadata if set.
	// If nil, returns a fixed set of spans (see Spans).
	ExtractMetadataFunc func(ctx context.Context, req ai.Request) ([]ai.Extraction, error)

	// Spans is the default response used when ExtractMetadataFunc is nil.
	Spans []ai.Extraction

	// LastRequest holds the most recent request received.
	LastRequest ai.Request

	callCount int
}

// NewMockMetadataExtractor creates a mock extractor that answers with spans.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockMetadataExtractor(spans ...ai.Extraction) *MockMetadataExtractor {
	return &MockMetadataExtractor{Spans: spans}
}

// ExtractMetadata records the request and returns the injected or default spans.
func (m *MockMetadataExtractor) ExtractMetadata(ctx context.Context, req ai.Request) ([]ai.Extraction, error) {
	m.callCount++
	m.LastRequest = req

	if m.ExtractMetadataFunc != nil {
		return m.ExtractMetadataFunc(ctx, req)
	}

	out := make([]ai.Extraction, len(m.Spans))
	copy(out, m.Spans)
	return out, nil
}

// WithExtractMetadataFunc sets custom behavior and returns the mock for chaining.
func (m *MockMetadataExtractor) WithExtractMetadataFunc(fn func(ctx context.Context, req ai.Request) ([]ai.Extraction, error)) *MockMetadataExtractor {
	m.ExtractMetadataFunc = fn
	return m
}

// CallCount returns the number of times ExtractMetadata was called.
func (m *MockMetadataExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockMetadataExtractor) Reset() {
	m.callCount = 0
	m.ExtractMetadataFunc = nil
	m.LastRequest = ai.Request{}
}
