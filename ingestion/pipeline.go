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

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/auth"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

// DuplicatePolicy controls what happens when the same file is uploaded
// to the same conversation more than once.
type DuplicatePolicy int

const (
	// DuplicateAccumulate keeps chunks from earlier uploads of the file.
	// Repeated uploads add records; nothing is removed.
	DuplicateAccumulate DuplicatePolicy = iota

	// DuplicateReplace removes the file's previously indexed chunks from
	// the conversation before indexing the new upload.
	DuplicateReplace
)

// Pipeline runs the document ingestion flow: validate, resolve format,
// extract content, chunk, embed and index, then record the upload.
// Stages run sequentially and fail fast; a failed stage leaves no
// audit record behind.
type Pipeline struct {
	store           storage.VectorStore
	uploads         storage.UploadRepository
	identity        auth.Identity
	extractor       *extractor
	chunker         *chunker
	indexer         *indexer
	recorder        *recorder
	pool            *ants.Pool
	duplicatePolicy DuplicatePolicy
	logger          *slog.Logger
}

type pipelineConfig struct {
	chunkSize       int
	chunkOverlap    int
	batchSize       int
	poolSize        int
	duplicatePolicy DuplicatePolicy
	logger          *slog.Logger
}

// Option configures the ingestion pipeline.
type Option func(*pipelineConfig)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *pipelineConfig) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks.
func WithChunkOverlap(overlap int) Option {
	return func(c *pipelineConfig) {
		if overlap >= 0 {
			c.chunkOverlap = overlap
		}
	}
}

// WithBatchSize sets how many chunk records are written to the vector
// store per batch.
func WithBatchSize(size int) Option {
	return func(c *pipelineConfig) {
		if size > 0 {
			c.batchSize = size
		}
	}
}

// WithPoolSize sets the number of concurrent vector store writers.
func WithPoolSize(size int) Option {
	return func(c *pipelineConfig) {
		if size > 0 {
			c.poolSize = size
		}
	}
}

// WithDuplicatePolicy sets how repeated uploads of the same file are
// handled. The default is DuplicateAccumulate.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(c *pipelineConfig) {
		c.duplicatePolicy = policy
	}
}

// WithLogger sets the logger used by the pipeline and its stages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *pipelineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewPipeline creates an ingestion pipeline wired to the given stores
// and AI provider.
func NewPipeline(store storage.VectorStore, uploads storage.UploadRepository, identity auth.Identity, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if uploads == nil {
		return nil, ErrUploadRepositoryRequired
	}
	if identity == nil {
		return nil, ErrIdentityRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	config := &pipelineConfig{
		chunkSize:       defaultChunkSize,
		chunkOverlap:    defaultChunkOverlap,
		batchSize:       defaultWriteBatchSize,
		poolSize:        max(runtime.NumCPU()/2, 1),
		duplicatePolicy: DuplicateAccumulate,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger.With("component", "ingestion")

	pool, err := ants.NewPool(config.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Pipeline{
		store:           store,
		uploads:         uploads,
		identity:        identity,
		extractor:       newExtractor(provider.DocumentAnalyzer(), provider.ImageCaptioner(), logger),
		chunker:         newChunker(config.chunkSize, config.chunkOverlap, logger),
		indexer:         newIndexer(store, provider.Embedder(), pool, config.batchSize, logger),
		recorder:        newRecorder(uploads, logger),
		pool:            pool,
		duplicatePolicy: config.duplicatePolicy,
		logger:          logger,
	}, nil
}

// Ingest processes one uploaded document end to end and returns the
// file name recorded for the upload. The request is validated before
// any collaborator is called; an unsupported format fails before any
// remote service is contacted.
func (p *Pipeline) Ingest(ctx context.Context, req *core.UploadRequest) (string, error) {
	if err := core.ValidateUploadRequest(req); err != nil {
		return "", err
	}

	format, err := ResolveFormat(req.FileName)
	if err != nil {
		return "", err
	}

	p.logger.Debug("ingesting document",
		"file", req.FileName,
		"conversation", req.ConversationId,
		"strategy", format.Strategy.String())

	fragments, err := p.extractor.extract(ctx, req, format)
	if err != nil {
		return "", err
	}

	chunks, err := p.chunker.chunk(fragments)
	if err != nil {
		return "", err
	}

	userId, err := p.identity.UserHash(ctx)
	if err != nil {
		return "", err
	}

	if p.duplicatePolicy == DuplicateReplace {
		if err := p.store.DeleteBySource(ctx, req.ConversationId, req.FileName); err != nil {
			return "", fmt.Errorf("%w: failed to remove prior chunks: %w", ErrIndexing, err)
		}
	}

	placeholder := false
	for _, fragment := range fragments {
		if fragment.Placeholder {
			placeholder = true
			break
		}
	}

	if err := p.indexer.index(ctx, chunks, req, userId, placeholder); err != nil {
		return "", err
	}

	if _, err := p.recorder.record(ctx, req.FileName, req.ConversationId, userId); err != nil {
		return "", err
	}

	p.logger.Info("document ingested",
		"file", req.FileName,
		"conversation", req.ConversationId,
		"chunks", len(chunks))
	return req.FileName, nil
}

// Close releases the pipeline's worker pool. The stores and provider
// are owned by the caller and left open.
func (p *Pipeline) Close() {
	p.pool.Release()
}
