package mock

import (
	"context"
	"strings"

	"github.com/poiesic/chatdocs/ai"
)

// MockAnalyzer is a test double for ai.DocumentAnalyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeDocumentFunc is called by AnalyzeDocument if set.
	// If nil, uses default paragraph-per-line behavior.
	AnalyzeDocumentFunc func(ctx context.Context, model string, content []byte) (*ai.AnalysisResult, error)

	callCount int
	lastModel string
}

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// AnalyzeDocument returns paragraphs derived from the content.
// Default behavior: each non-empty line of the content becomes one paragraph.
func (m *MockAnalyzer) AnalyzeDocument(ctx context.Context, model string, content []byte) (*ai.AnalysisResult, error) {
	m.callCount++
	m.lastModel = model

	if m.AnalyzeDocumentFunc != nil {
		return m.AnalyzeDocumentFunc(ctx, model, content)
	}

	result := &ai.AnalysisResult{}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result.Paragraphs = append(result.Paragraphs, ai.Paragraph{Contents: line})
	}
	return result, nil
}

// CallCount returns the number of times AnalyzeDocument was called.
func (m *MockAnalyzer) CallCount() int {
	return m.callCount
}

// LastModel returns the model identifier of the most recent call.
func (m *MockAnalyzer) LastModel() string {
	return m.lastModel
}

// Reset clears the call count and injected behavior.
func (m *MockAnalyzer) Reset() {
	m.callCount = 0
	m.lastModel = ""
	m.AnalyzeDocumentFunc = nil
}
