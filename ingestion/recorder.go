package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

// recorder writes the audit record tying an upload to its conversation
// and user. Exactly one record is written per successful ingestion.
type recorder struct {
	uploads storage.UploadRepository
	logger  *slog.Logger
}

func newRecorder(uploads storage.UploadRepository, logger *slog.Logger) *recorder {
	return &recorder{
		uploads: uploads,
		logger:  logger.With("component", "recorder"),
	}
}

func (r *recorder) record(ctx context.Context, fileName, conversationId, userId string) (*core.UploadRecord, error) {
	record := &core.UploadRecord{
		Id:             uuid.NewString(),
		ConversationId: conversationId,
		UserId:         userId,
		CreatedAt:      time.Now().UTC(),
		RecordType:     core.RecordTypeDocument,
		FileName:       fileName,
	}

	stored, err := r.uploads.UpsertUpload(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordPersist, err)
	}

	r.logger.Debug("recorded upload", "id", stored.Id, "file", fileName, "conversation", conversationId)
	return stored, nil
}
