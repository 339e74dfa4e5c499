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

// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.MetadataExtractor and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without
// an extraction service and keep behavior controlled and deterministic.
//
// # Usage in Tests
//
//	extractor := mock.NewMockMetadataExtractor(
//	    ai.Extraction{Class: ai.LabelServiceName, Text: "Payment API"},
//	)
//	provider := mock.NewMockProviderWithExtractor(extractor)
//
//	// Simulate an unreachable service
//	provider.PingFunc = func(ctx context.Context) error { return errors.New("down") }
//
//	// Check call counts
//	count := extractor.CallCount()
package mock
