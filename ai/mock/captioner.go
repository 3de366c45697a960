package mock

import (
	"context"

	"github.com/poiesic/chatdocs/ai"
)

// MockCaptioner is a test double for ai.ImageCaptioner.
// It allows custom behavior injection via function fields.
type MockCaptioner struct {
	// DescribeImageFunc is called by DescribeImage if set.
	// If nil, uses default single-caption behavior.
	DescribeImageFunc func(ctx context.Context, content []byte) ([]ai.Caption, error)

	callCount int
}

// NewMockCaptioner creates a mock captioner with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCaptioner() *MockCaptioner {
	return &MockCaptioner{}
}

// DescribeImage returns captions for the image.
// Default behavior: a single generic caption.
func (m *MockCaptioner) DescribeImage(ctx context.Context, content []byte) ([]ai.Caption, error) {
	m.callCount++

	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, content)
	}

	return []ai.Caption{{Text: "a test image", Confidence: 0.9}}, nil
}

// CallCount returns the number of times DescribeImage was called.
func (m *MockCaptioner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockCaptioner) Reset() {
	m.callCount = 0
	m.DescribeImageFunc = nil
}
