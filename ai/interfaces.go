package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// DocumentAnalyzer extracts paragraph text from document files.
// Analysis runs on a remote service and may take seconds; implementations
// block until the remote analysis completes or ctx is done.
// Implementations must be thread-safe for concurrent use.
type DocumentAnalyzer interface {
	// AnalyzeDocument submits document content for analysis with the given
	// prebuilt model and returns the completed result. The result's
	// paragraphs are in document reading order. An analysis that completes
	// with no paragraphs is returned as-is; callers decide how to treat it.
	AnalyzeDocument(ctx context.Context, model string, content []byte) (*AnalysisResult, error)
}

// ImageCaptioner produces natural-language captions describing an image.
// Implementations must be thread-safe for concurrent use.
type ImageCaptioner interface {
	// DescribeImage submits raw image bytes and returns zero or more
	// captions ordered by the service's confidence. An empty slice is a
	// valid response for images the service cannot describe.
	DescribeImage(ctx context.Context, content []byte) ([]Caption, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the Embedder, DocumentAnalyzer
// and ImageCaptioner instances, ensuring they share configuration and
// resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// DocumentAnalyzer returns the document analysis service.
	// The returned DocumentAnalyzer is safe for concurrent use.
	DocumentAnalyzer() DocumentAnalyzer

	// ImageCaptioner returns the image captioning service.
	// The returned ImageCaptioner is safe for concurrent use.
	ImageCaptioner() ImageCaptioner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
