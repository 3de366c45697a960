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


// Package storage provides the storage abstraction layer for chatdocs.
//
// This package defines the interfaces that decouple persistence from the
// ingestion pipeline. Two stores back the system:
//
//   - VectorStore: chunk records with embeddings, supporting similarity
//     search. Implemented by storage/azsearch over the Azure Cognitive
//     Search REST API.
//   - UploadRepository: durable per-file audit records, independent of the
//     vector store. Implemented by storage/badger over BadgerDB.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and
// enable alternative backend implementations:
//
//	uploads, err := badger.NewUploadRepository(backend)  // returns storage.UploadRepository
//
// Internal package constructors may return concrete types since they're
// only used within the implementation package.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines. Per-record writes are atomic; batches are not
// transactional across records.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
