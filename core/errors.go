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

import "errors"

// Domain validation errors
var (
	// ErrInvalidUpload indicates an UploadRequest failed validation.
	ErrInvalidUpload = errors.New("invalid upload request")

	// ErrMissingFile indicates the uploaded file has no contents.
	ErrMissingFile = errors.New("file contents are required")

	// ErrMissingFileName indicates the uploaded file has no name.
	ErrMissingFileName = errors.New("file name is required")

	// ErrMissingConversation indicates the conversation identifier is empty.
	ErrMissingConversation = errors.New("conversation id is required")

	// ErrFileTooLarge indicates the declared file size is at or above MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrInvalidUploadRecord indicates an UploadRecord failed validation.
	ErrInvalidUploadRecord = errors.New("invalid upload record")

	// ErrMissingRecordId indicates the record Id field is empty.
	ErrMissingRecordId = errors.New("record id is required")

	// ErrMissingUserId indicates the owning user identifier is empty.
	ErrMissingUserId = errors.New("user id is required")
)
