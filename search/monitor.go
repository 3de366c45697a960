package search

import "github.com/poiesic/chatdocs/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(conversationId, query string)
	AfterQueryEmbedding(vector []float32)
	AfterVectorSearch(matches []*core.ChunkMatch)
	PlaceholderSkipped(record *core.ChunkRecord)
	VerbatimBoost(record *core.ChunkRecord)
	Finish(results []*core.ChunkMatch)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                       {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)         {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.ChunkMatch)  {}
func (n *noopMonitor) PlaceholderSkipped(_ *core.ChunkRecord)  {}
func (n *noopMonitor) VerbatimBoost(_ *core.ChunkRecord)       {}
func (n *noopMonitor) Finish(_ []*core.ChunkMatch)             {}
