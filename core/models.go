package core

import (
	"time"
)

// MaxUploadSize is the maximum accepted size of an uploaded file in bytes.
// Requests at or above this limit are rejected before any collaborator call.
const MaxUploadSize = 100_000_000

// RecordTypeDocument is the record type tag stored on every UploadRecord.
const RecordTypeDocument = "ingested-document"

// UploadRequest describes a single file upload bound to a conversation.
// It is transient and lives only for the duration of one ingestion call.
type UploadRequest struct {
	FileName       string
	ContentType    string
	Size           int64
	Contents       []byte
	ConversationId string
}

// Fragment is one unit of extracted text with source attribution,
// produced by the content extractor prior to chunking.
type Fragment struct {
	Contents    string
	SourceFile  string
	Placeholder bool // set when the captioner returned nothing usable
}

// ChunkRecord is a single chunk of extracted text together with its
// embedding and ownership metadata, as persisted in the vector store.
// All chunk records produced for one upload share the same ConversationId
// and UserId.
type ChunkRecord struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversationId"`
	UserId         string    `json:"userId"`
	Contents       string    `json:"content"`
	SourceFile     string    `json:"sourceFile"`
	Placeholder    bool      `json:"placeholder"`
	Vector         []float32 `json:"embedding,omitempty"`
}

// UploadRecord is the durable audit record created once per successfully
// ingested file, independent of how many chunks were produced. It is
// mutated later only by a soft delete, never physically removed.
type UploadRecord struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversationId"`
	UserId         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	RecordType     string    `json:"type"`
	IsDeleted      bool      `json:"isDeleted"`
	FileName       string    `json:"name"`
}

// ChunkMatch represents a chunk record match from vector similarity search.
type ChunkMatch struct {
	Record *ChunkRecord `json:"record"`
	Score  float32      `json:"score"`
}
