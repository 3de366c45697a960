package ingestion

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/poiesic/chatdocs/core"
)

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 64
)

// chunker joins extracted fragments into a single document and splits
// it into overlapping chunks sized for embedding.
type chunker struct {
	splitter textsplitter.RecursiveCharacter
	logger   *slog.Logger
}

func newChunker(chunkSize, chunkOverlap int, logger *slog.Logger) *chunker {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
	)
	return &chunker{
		splitter: splitter,
		logger:   logger.With("component", "chunker"),
	}
}

// chunk splits the fragments into indexable text chunks. Fragments with
// no usable content yield a nil slice and no error.
func (c *chunker) chunk(fragments []core.Fragment) ([]string, error) {
	texts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment.Contents == "" {
			continue
		}
		texts = append(texts, fragment.Contents)
	}

	document := strings.Join(texts, "\n")
	if strings.TrimSpace(document) == "" {
		return nil, nil
	}

	chunks, err := c.splitter.SplitText(document)
	if err != nil {
		return nil, fmt.Errorf("failed to split document: %w", err)
	}

	c.logger.Debug("split document", "fragments", len(fragments), "chunks", len(chunks))
	return chunks, nil
}
