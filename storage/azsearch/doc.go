// Package azsearch implements the vector store over the Azure Cognitive
// Search REST API.
//
// Chunk records are indexed with the mergeOrUpload action and searched with
// vector queries filtered by conversation. The index schema is expected to
// carry the fields id, conversationId, userId, content, sourceFile,
// placeholder and the configured vector field.
//
// The client never computes embeddings itself; records must arrive with
// their vectors already populated.
package azsearch
