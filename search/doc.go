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

// Package search turns free-text queries into metadata filters and runs
// filtered or unfiltered keyword search over the indexed collection.
//
// BuildFilters maps a query onto service, version and doc_type constraints.
// Index holds the collection in a storage.DocumentRepository and applies
// those constraints on top of a plain token-substring relevance test:
//   - unfiltered: any query token appears in the content
//   - filtered: every present filter passes and the content test still holds
//
// Results keep collection order; there is no ranking.
package search
