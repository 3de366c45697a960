package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUploadRequest() *UploadRequest {
	return &UploadRequest{
		FileName:       "report.pdf",
		ContentType:    "application/pdf",
		Size:           1024,
		Contents:       []byte(strings.Repeat("x", 1024)),
		ConversationId: "conv-1",
	}
}

func TestValidateUploadRequest_Valid(t *testing.T) {
	require.NoError(t, ValidateUploadRequest(validUploadRequest()))
}

func TestValidateUploadRequest_Nil(t *testing.T) {
	err := ValidateUploadRequest(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestValidateUploadRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UploadRequest)
		wantErr error
	}{
		{
			name:    "empty file name",
			mutate:  func(r *UploadRequest) { r.FileName = "" },
			wantErr: ErrMissingFileName,
		},
		{
			name:    "empty contents",
			mutate:  func(r *UploadRequest) { r.Contents = nil },
			wantErr: ErrMissingFile,
		},
		{
			name:    "empty conversation id",
			mutate:  func(r *UploadRequest) { r.ConversationId = "" },
			wantErr: ErrMissingConversation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUploadRequest()
			tt.mutate(req)
			err := ValidateUploadRequest(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUpload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUploadRequest_TooLarge(t *testing.T) {
	req := validUploadRequest()
	req.Size = MaxUploadSize

	err := ValidateUploadRequest(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUpload)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateUploadRequest_JustBelowLimit(t *testing.T) {
	req := validUploadRequest()
	req.Size = MaxUploadSize - 1

	require.NoError(t, ValidateUploadRequest(req))
}

func TestValidateUploadRecord_Valid(t *testing.T) {
	record := &UploadRecord{
		Id:             "id-1",
		ConversationId: "conv-1",
		UserId:         "user-1",
		CreatedAt:      time.Now().UTC(),
		RecordType:     RecordTypeDocument,
		FileName:       "report.pdf",
	}
	require.NoError(t, ValidateUploadRecord(record))
}

func TestValidateUploadRecord_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		record  *UploadRecord
		wantErr error
	}{
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidUploadRecord,
		},
		{
			name:    "missing id",
			record:  &UploadRecord{ConversationId: "c", UserId: "u", FileName: "f"},
			wantErr: ErrMissingRecordId,
		},
		{
			name:    "missing conversation",
			record:  &UploadRecord{Id: "i", UserId: "u", FileName: "f"},
			wantErr: ErrMissingConversation,
		},
		{
			name:    "missing user",
			record:  &UploadRecord{Id: "i", ConversationId: "c", FileName: "f"},
			wantErr: ErrMissingUserId,
		},
		{
			name:    "missing file name",
			record:  &UploadRecord{Id: "i", ConversationId: "c", UserId: "u"},
			wantErr: ErrMissingFileName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUploadRecord(tt.record)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUploadRecord)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
