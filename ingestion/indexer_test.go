package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/chatdocs/ai/mock"
	"github.com/poiesic/chatdocs/core"
)

func newTestIndexer(t *testing.T, store *fakeVectorStore, embedder *mock.MockEmbedder, batchSize int) *indexer {
	t.Helper()

	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	return newIndexer(store, embedder, pool, batchSize, slog.Default())
}

func chunkTexts(count int) []string {
	chunks := make([]string, count)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk %d content", i)
	}
	return chunks
}

func TestIndexer_Index(t *testing.T) {
	store := newFakeVectorStore()
	ix := newTestIndexer(t, store, mock.NewMockEmbedder(), 16)

	req := uploadRequest("report.pdf")
	err := ix.index(context.Background(), chunkTexts(3), req, "user-hash", false)
	require.NoError(t, err)

	records := store.stored()
	require.Len(t, records, 3)

	seen := make(map[string]bool)
	for _, record := range records {
		assert.NotEmpty(t, record.Id)
		assert.False(t, seen[record.Id])
		seen[record.Id] = true
		assert.Equal(t, "conv-1", record.ConversationId)
		assert.Equal(t, "user-hash", record.UserId)
		assert.Equal(t, "report.pdf", record.SourceFile)
		assert.NotEmpty(t, record.Vector)
	}
}

func TestIndexer_ZeroChunksIsNoOp(t *testing.T) {
	store := newFakeVectorStore()
	embedder := mock.NewMockEmbedder()
	ix := newTestIndexer(t, store, embedder, 16)

	err := ix.index(context.Background(), nil, uploadRequest("report.pdf"), "user-hash", false)
	require.NoError(t, err)
	assert.Empty(t, store.stored())
	assert.Zero(t, embedder.CallCount())
}

func TestIndexer_SingleEmbeddingCall(t *testing.T) {
	store := newFakeVectorStore()
	embedder := mock.NewMockEmbedder()
	ix := newTestIndexer(t, store, embedder, 2)

	err := ix.index(context.Background(), chunkTexts(9), uploadRequest("report.pdf"), "user-hash", false)
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.CallCount())
	assert.Len(t, store.stored(), 9)
	assert.Equal(t, 5, store.addCalls)
}

func TestIndexer_EmbeddingFailure(t *testing.T) {
	store := newFakeVectorStore()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	ix := newTestIndexer(t, store, embedder, 16)

	err := ix.index(context.Background(), chunkTexts(2), uploadRequest("report.pdf"), "user-hash", false)
	require.ErrorIs(t, err, ErrIndexing)
	assert.Empty(t, store.stored())
}

func TestIndexer_EmbeddingCountMismatch(t *testing.T) {
	store := newFakeVectorStore()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{0.1, 0.2}}, nil
	}
	ix := newTestIndexer(t, store, embedder, 16)

	err := ix.index(context.Background(), chunkTexts(3), uploadRequest("report.pdf"), "user-hash", false)
	require.ErrorIs(t, err, ErrIndexing)
	assert.Contains(t, err.Error(), "mismatch")
	assert.Empty(t, store.stored())
}

func TestIndexer_EmptyEmbeddingRejected(t *testing.T) {
	store := newFakeVectorStore()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{0.5}
		}
		vectors[len(vectors)-1] = nil
		return vectors, nil
	}
	ix := newTestIndexer(t, store, embedder, 16)

	err := ix.index(context.Background(), chunkTexts(2), uploadRequest("report.pdf"), "user-hash", false)
	require.ErrorIs(t, err, ErrIndexing)
	assert.Empty(t, store.stored())
}

func TestIndexer_WriteFailure(t *testing.T) {
	store := newFakeVectorStore()
	store.addDocumentsFunc = func(ctx context.Context, records ...*core.ChunkRecord) error {
		return errors.New("service unavailable")
	}
	ix := newTestIndexer(t, store, mock.NewMockEmbedder(), 2)

	err := ix.index(context.Background(), chunkTexts(5), uploadRequest("report.pdf"), "user-hash", false)
	require.ErrorIs(t, err, ErrIndexing)
	assert.Contains(t, err.Error(), "service unavailable")
}

func TestIndexer_PlaceholderFlagPropagates(t *testing.T) {
	store := newFakeVectorStore()
	ix := newTestIndexer(t, store, mock.NewMockEmbedder(), 16)

	err := ix.index(context.Background(), []string{"Cannot identify the image"}, uploadRequest("blurry.png"), "user-hash", true)
	require.NoError(t, err)

	records := store.stored()
	require.Len(t, records, 1)
	assert.True(t, records[0].Placeholder)
}

func TestBatchRecords(t *testing.T) {
	records := make([]*core.ChunkRecord, 7)
	for i := range records {
		records[i] = &core.ChunkRecord{Id: fmt.Sprintf("r%d", i)}
	}

	batches := batchRecords(records, 3)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[1], 3)
	assert.Len(t, batches[2], 1)

	batches = batchRecords(records, 0)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 7)
}
