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

package chatdocs

import (
	"errors"
	"log/slog"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/ai/azure"
	"github.com/poiesic/chatdocs/auth"
	"github.com/poiesic/chatdocs/ingestion"
	"github.com/poiesic/chatdocs/search"
	"github.com/poiesic/chatdocs/storage"
	"github.com/poiesic/chatdocs/storage/azsearch"
	"github.com/poiesic/chatdocs/storage/badger"
)

// KnowledgeBase ties together the stores and AI services that back
// per-conversation document retrieval. Upload records live in a local
// badger database; chunk embeddings live in the remote search index.
type KnowledgeBase struct {
	backend  *badger.Backend
	uploads  storage.UploadRepository
	vectors  storage.VectorStore
	provider ai.Provider
	identity auth.Identity
	logger   *slog.Logger
}

// KnowledgeBaseOption configures a KnowledgeBase.
type KnowledgeBaseOption func(*knowledgeBaseOptions)

type knowledgeBaseOptions struct {
	aiConfig     *ai.Config
	searchConfig *azsearch.Config
	vectors      storage.VectorStore
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithSearchConfig sets the search index configuration.
func WithSearchConfig(config *azsearch.Config) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		if config != nil {
			o.searchConfig = config
		}
	}
}

// WithVectorStore overrides the vector store, bypassing the search
// index configuration. Intended for tests and alternative backends.
func WithVectorStore(store storage.VectorStore) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.vectors = store
	}
}

// NewKnowledgeBase opens a knowledge base with its upload record store
// at filePath.
func NewKnowledgeBase(filePath string, opts ...KnowledgeBaseOption) (*KnowledgeBase, error) {
	options := &knowledgeBaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	uploads, err := badger.NewUploadRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors := options.vectors
	if vectors == nil {
		if options.searchConfig == nil {
			uploads.Close()
			backend.Close()
			return nil, errors.New("search configuration or vector store is required")
		}
		client, err := azsearch.NewClient(options.searchConfig)
		if err != nil {
			uploads.Close()
			backend.Close()
			return nil, err
		}
		vectors = client
	}

	provider, err := azure.NewProvider(options.aiConfig)
	if err != nil {
		uploads.Close()
		backend.Close()
		return nil, err
	}

	return &KnowledgeBase{
		backend:  backend,
		uploads:  uploads,
		vectors:  vectors,
		provider: provider,
		identity: auth.NewHashedIdentity(),
		logger:   slog.Default(),
	}, nil
}

func (kb *KnowledgeBase) Close() error {
	if err := kb.provider.Close(); err != nil {
		kb.logger.Error("error closing AI provider", "err", err)
	}

	if err := kb.uploads.Close(); err != nil {
		kb.logger.Error("error closing upload repository", "err", err)
		return err
	}

	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (kb *KnowledgeBase) UploadRepository() storage.UploadRepository {
	return kb.uploads
}

func (kb *KnowledgeBase) VectorStore() storage.VectorStore {
	return kb.vectors
}

func (kb *KnowledgeBase) Identity() auth.Identity {
	return kb.identity
}

func (kb *KnowledgeBase) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(kb.vectors, kb.uploads, kb.identity, kb.provider, opts...)
}

func (kb *KnowledgeBase) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(kb.vectors, kb.provider.Embedder(), opts...)
}
