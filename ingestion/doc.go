// Package ingestion implements the document ingestion flow that feeds a
// conversation's knowledge base. An uploaded file is validated, its
// format resolved to an extraction strategy, its content extracted via
// document analysis or image captioning, split into overlapping chunks,
// embedded and written to the vector store, and finally tied to the
// conversation through an upload audit record.
package ingestion
