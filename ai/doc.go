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


// Package ai provides abstractions for the AI collaborator services used by
// chatdocs.
//
// This package defines interfaces for the remote services the ingestion
// pipeline depends on: text embeddings, document analysis and image
// captioning. It follows the dependency inversion principle, allowing the
// pipeline and business logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - DocumentAnalyzer: Extracts paragraph text from document files
//   - ImageCaptioner: Describes images with natural-language captions
//   - Provider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes implementation sub-packages:
//
//   - ai/azure: Document analysis and image captioning over the Azure
//     Cognitive Services REST APIs, plus a Provider wiring them together
//     with the OpenAI embedder
//   - ai/openai: Embeddings using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (azure.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := azure.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockAnalyzer,
// mock.NewMockCaptioner) return CONCRETE types to enable test assertions and
// behavior injection via the mock's public fields and methods (CallCount,
// function fields, Reset).
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithDocumentService(docEndpoint, docKey),
//	    ai.WithVisionService(visionEndpoint, visionKey),
//	)
//	provider, err := azure.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	result, err := provider.DocumentAnalyzer().AnalyzeDocument(ctx, ai.ModelPrebuiltDocument, contents)
//	captions, err := provider.ImageCaptioner().DescribeImage(ctx, imageBytes)
package ai
