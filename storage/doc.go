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

// Package storage provides the storage abstraction layer for metadex.
//
// The search index keeps its documents behind DocumentRepository so the
// matching logic never touches the backend directly. The only backend is
// BadgerDB running in memory; indexes live for the lifetime of the process.
//
// # Usage
//
//	repo, err := badger.NewMemoryRepository(logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Context Support
//
// Repository methods accept context.Context and check it between records,
// so a cancelled context stops long scans early.
package storage
