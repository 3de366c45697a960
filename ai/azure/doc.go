// Package azure implements the document analysis and image captioning
// collaborator interfaces over the Azure Cognitive Services REST APIs.
//
// The Analyzer submits document bytes to the Document Intelligence
// documentModels analyze operation and polls the returned operation URL
// until the analysis completes. The Captioner calls the Computer Vision
// describe-image operation synchronously.
//
// NewProvider aggregates both services with the OpenAI-compatible embedder
// from the ai/openai package, mirroring how the production deployment pairs
// Azure extraction with OpenAI embeddings.
package azure
