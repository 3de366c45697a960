package storage

import (
	"context"

	"github.com/poiesic/chatdocs/core"
)

// VectorStore persists chunk records with their embeddings and supports
// similarity search over them. Implementations must be thread-safe and
// support concurrent access; per-record writes are atomic but batches are
// not transactional across records.
type VectorStore interface {
	// AddDocuments writes chunk records to the store. Every record must
	// already carry a non-empty embedding vector. Partial success is
	// possible: some records may be written before an error is returned.
	AddDocuments(ctx context.Context, records ...*core.ChunkRecord) error

	// SimilaritySearch finds up to limit chunk records most similar to the
	// given vector, scoped to one conversation. Results are ordered by
	// similarity score (highest first).
	SimilaritySearch(ctx context.Context, vector []float32, conversationId string, limit int) ([]*core.ChunkMatch, error)

	// DeleteBySource removes all chunk records for one source file within
	// a conversation. Used by the replace duplicate policy.
	DeleteBySource(ctx context.Context, conversationId, sourceFile string) error
}

// UploadRepository provides operations for managing upload audit records.
// Implementations must be thread-safe and support concurrent access.
type UploadRepository interface {
	// UpsertUpload inserts or replaces an upload record keyed by its Id.
	// Sets CreatedAt if not already set. Returns the stored record.
	UpsertUpload(ctx context.Context, record *core.UploadRecord) (*core.UploadRecord, error)

	// GetUpload retrieves a single upload record by Id.
	// Returns ErrNotFound if the record doesn't exist.
	GetUpload(ctx context.Context, id string) (*core.UploadRecord, error)

	// ListUploads retrieves the upload records for a conversation, ordered
	// by creation time. Soft-deleted records are excluded.
	ListUploads(ctx context.Context, conversationId string) ([]*core.UploadRecord, error)

	// SoftDeleteUpload marks an upload record as deleted without removing
	// it. Returns ErrNotFound if the record doesn't exist.
	SoftDeleteUpload(ctx context.Context, id string) error

	// Close closes the repository and releases resources.
	Close() error
}
