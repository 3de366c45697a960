// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.DocumentAnalyzer, ai.ImageCaptioner and ai.Provider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	result, err := mockProvider.DocumentAnalyzer().AnalyzeDocument(ctx, model, contents)
//
//	// Custom behavior injection
//	analyzer := mock.NewMockAnalyzer()
//	analyzer.AnalyzeDocumentFunc = func(ctx context.Context, model string, content []byte) (*ai.AnalysisResult, error) {
//	    return &ai.AnalysisResult{}, nil
//	}
//
//	// Check call counts
//	count := analyzer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockAnalyzer: Turns each non-empty content line into a paragraph
//   - MockCaptioner: Returns a single generic caption
//   - MockProvider: Aggregates the three mocks
package mock
