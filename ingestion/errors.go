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

package ingestion

import "errors"

var (
	// ErrUnsupportedFormat indicates the file extension maps to no known
	// extraction strategy.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionService indicates the remote analysis or captioning
	// service failed or returned a malformed response.
	ErrExtractionService = errors.New("content extraction failed")

	// ErrEmptyExtraction indicates the analysis service succeeded but
	// produced no usable content for the document.
	ErrEmptyExtraction = errors.New("no content extracted from document")

	// ErrIndexing indicates embedding or vector store persistence failed.
	ErrIndexing = errors.New("chunk indexing failed")

	// ErrRecordPersist indicates the upload audit record could not be
	// stored.
	ErrRecordPersist = errors.New("upload record persistence failed")
)

var (
	ErrVectorStoreRequired      = errors.New("vector store is required")
	ErrUploadRepositoryRequired = errors.New("upload repository is required")
	ErrProviderRequired         = errors.New("AI provider is required")
	ErrIdentityRequired         = errors.New("identity resolver is required")
)
