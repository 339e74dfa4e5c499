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

// Package ingestion turns raw documents into indexed documents.
//
// A Pipeline validates a batch, then runs the selected extract.Strategy over
// each document in input order. Documents whose title and content are
// byte-identical to an earlier document in the same batch reuse that
// document's metadata instead of being extracted again. A failing document
// never aborts the batch; the strategy itself handles per-document fallback.
package ingestion
