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

// Package ai provides abstractions for the probabilistic metadata extraction
// capability used by metadex.
//
// The capability is optional. Callers check it once with AIProvider.Ping and
// fall back to rule-based extraction when it does not answer.
//
// # Interfaces
//
//   - MetadataExtractor: turns a Request into labeled Extraction spans
//   - AIProvider: owns the extractor and answers the start-up ping
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types. Mock constructors
// return concrete types so tests can inject behavior and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	spans, err := provider.MetadataExtractor().ExtractMetadata(ctx, ai.Request{
//	    Text:            doc.Content,
//	    TaskDescription: ai.TaskDescription,
//	    Examples:        ai.WorkedExamples,
//	    Passes:          config.ExtractionPasses,
//	})
package ai
