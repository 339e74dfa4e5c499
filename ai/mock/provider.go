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

package mock

import (
	"context"

	"github.com/poiesic/metadex/ai"
)

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	// PingFunc is called by Ping if set. If nil, Ping succeeds.
	PingFunc func(ctx context.Context) error

	extractor *MockMetadataExtractor
	pings     int
	closed    bool
}

// NewMockProvider creates a new mock provider whose extractor returns no spans.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockExtractor() to access the concrete extractor for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		extractor: NewMockMetadataExtractor(),
	}
}

// NewMockProviderWithExtractor creates a mock provider around a custom extractor.
func NewMockProviderWithExtractor(extractor *MockMetadataExtractor) *MockProvider {
	return &MockProvider{
		extractor: extractor,
	}
}

// MetadataExtractor returns the mock extractor.
func (p *MockProvider) MetadataExtractor() ai.MetadataExtractor {
	return p.extractor
}

// Ping counts the call and delegates to PingFunc.
func (p *MockProvider) Ping(ctx context.Context) error {
	p.pings++
	if p.PingFunc != nil {
		return p.PingFunc(ctx)
	}
	return nil
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockMetadataExtractor {
	return p.extractor
}

// PingCount returns how many times Ping was called.
func (p *MockProvider) PingCount() int {
	return p.pings
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}
