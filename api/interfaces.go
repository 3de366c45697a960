package api

import (
	"context"

	"github.com/poiesic/chatdocs/core"
)

// Ingestor processes one uploaded document end to end.
type Ingestor interface {
	Ingest(ctx context.Context, req *core.UploadRequest) (string, error)
}

// Retriever searches a conversation's indexed chunks.
type Retriever interface {
	FindSimilar(ctx context.Context, conversationId, query string, maxHits int) ([]*core.ChunkMatch, error)
}
