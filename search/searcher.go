package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

// verbatimBoost is added to a match's score when the chunk contains
// every significant word of the query.
const verbatimBoost = 0.3

// Searcher retrieves document chunks relevant to a query, scoped to a
// single conversation's knowledge base.
type Searcher struct {
	store               storage.VectorStore
	embedder            ai.Embedder
	includePlaceholders bool
	logger              *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPlaceholders includes placeholder chunks (images the captioning
// service could not describe) in search results. By default they are
// filtered out.
func WithPlaceholders() Option {
	return func(s *Searcher) error {
		s.includePlaceholders = true
		return nil
	}
}

// NewSearcher creates a new searcher over the given vector store.
func NewSearcher(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches the conversation's indexed chunks for the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, conversationId, query string, maxHits int) ([]*core.ChunkMatch, error) {
	return s.FindSimilarWithMonitor(ctx, conversationId, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring. The monitor receives
// callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, conversationId, query string, maxHits int, monitor SearchMonitor) ([]*core.ChunkMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if conversationId == "" {
		return nil, ErrMissingConversation
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if maxHits <= 0 {
		maxHits = 10
	}

	monitor.Start(conversationId, query)

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(vector)

	// Over-fetch so placeholder filtering still leaves maxHits results.
	fetchLimit := maxHits
	if !s.includePlaceholders {
		fetchLimit = maxHits * 2
	}

	matches, err := s.store.SimilaritySearch(ctx, vector, conversationId, fetchLimit)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "conversation", conversationId, "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(matches)

	results := make([]*core.ChunkMatch, 0, len(matches))
	for _, match := range matches {
		if match == nil || match.Record == nil {
			continue
		}
		if match.Record.Placeholder && !s.includePlaceholders {
			monitor.PlaceholderSkipped(match.Record)
			continue
		}

		score := match.Score
		if containsAllQueryWords(match.Record.Contents, query) {
			score += verbatimBoost
			monitor.VerbatimBoost(match.Record)
		}

		results = append(results, &core.ChunkMatch{
			Record: match.Record,
			Score:  score,
		})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}
