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


package core

import (
	"fmt"
)

// ValidateUploadRequest validates an UploadRequest according to domain rules.
//
// Validation rules:
//   - FileName must not be empty
//   - Contents must not be empty
//   - Size must be below MaxUploadSize
//   - ConversationId must not be empty
//
// NOT validated here (checked later in the pipeline):
//   - File extension support (resolved by the format resolver)
//   - ContentType (informational only; dispatch is by extension)
func ValidateUploadRequest(req *UploadRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidUpload)
	}

	if req.FileName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrMissingFileName)
	}

	if len(req.Contents) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrMissingFile)
	}

	if req.ConversationId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrMissingConversation)
	}

	if req.Size >= MaxUploadSize || int64(len(req.Contents)) >= MaxUploadSize {
		return fmt.Errorf("%w: %w: %d bytes", ErrInvalidUpload, ErrFileTooLarge, req.Size)
	}

	return nil
}

// ValidateUploadRecord validates an UploadRecord according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - ConversationId must not be empty
//   - UserId must not be empty
//   - FileName must not be empty
//
// NOT validated (set by the recorder):
//   - RecordType (always RecordTypeDocument)
//   - CreatedAt (zero is tolerated, storage sets it on upsert)
func ValidateUploadRecord(record *UploadRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidUploadRecord)
	}

	if record.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUploadRecord, ErrMissingRecordId)
	}

	if record.ConversationId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUploadRecord, ErrMissingConversation)
	}

	if record.UserId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUploadRecord, ErrMissingUserId)
	}

	if record.FileName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUploadRecord, ErrMissingFileName)
	}

	return nil
}
