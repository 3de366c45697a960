package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

const defaultWriteBatchSize = 16

// indexer embeds chunks and persists them to the vector store. The
// whole upload is embedded in one call, then written in fixed-size
// batches through the worker pool.
type indexer struct {
	store     storage.VectorStore
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

func newIndexer(store storage.VectorStore, embedder ai.Embedder, pool *ants.Pool, batchSize int, logger *slog.Logger) *indexer {
	return &indexer{
		store:     store,
		embedder:  embedder,
		pool:      pool,
		batchSize: batchSize,
		logger:    logger.With("component", "indexer"),
	}
}

// index embeds every chunk and writes the resulting records. Zero
// chunks is a no-op, not an error. A partial write failure surfaces as
// ErrIndexing carrying each failed batch.
func (ix *indexer) index(ctx context.Context, chunks []string, req *core.UploadRequest, userId string, placeholder bool) error {
	if len(chunks) == 0 {
		ix.logger.Debug("nothing to index", "file", req.FileName)
		return nil
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexing, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: embedding count mismatch: got %d vectors for %d chunks",
			ErrIndexing, len(vectors), len(chunks))
	}

	records := make([]*core.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		if len(vectors[i]) == 0 {
			return fmt.Errorf("%w: empty embedding for chunk %d", ErrIndexing, i)
		}
		records[i] = &core.ChunkRecord{
			Id:             uuid.NewString(),
			ConversationId: req.ConversationId,
			UserId:         userId,
			Contents:       chunk,
			SourceFile:     req.FileName,
			Placeholder:    placeholder,
			Vector:         vectors[i],
		}
	}

	batches := batchRecords(records, ix.batchSize)
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		if err := ix.pool.Submit(func() {
			defer wg.Done()
			errs[i] = ix.store.AddDocuments(ctx, batch...)
		}); err != nil {
			errs[i] = err
			wg.Done()
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexing, err)
	}

	ix.logger.Info("indexed document chunks",
		"file", req.FileName,
		"conversation", req.ConversationId,
		"chunks", len(records),
		"batches", len(batches))
	return nil
}

func batchRecords(records []*core.ChunkRecord, size int) [][]*core.ChunkRecord {
	if size <= 0 {
		size = defaultWriteBatchSize
	}
	batches := make([][]*core.ChunkRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}
