package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/core"
)

// placeholderCaption stands in for images the captioning service could
// not describe, so the upload still yields a retrievable trace.
const placeholderCaption = "Cannot identify the image"

// extractor turns raw file bytes into content fragments using the
// strategy resolved for the file's format.
type extractor struct {
	analyzer  ai.DocumentAnalyzer
	captioner ai.ImageCaptioner
	logger    *slog.Logger
}

func newExtractor(analyzer ai.DocumentAnalyzer, captioner ai.ImageCaptioner, logger *slog.Logger) *extractor {
	return &extractor{
		analyzer:  analyzer,
		captioner: captioner,
		logger:    logger.With("component", "extractor"),
	}
}

func (e *extractor) extract(ctx context.Context, req *core.UploadRequest, format Format) ([]core.Fragment, error) {
	switch format.Strategy {
	case StrategyStructuredDocument:
		return e.extractParagraphs(ctx, req, format.Model)
	case StrategyImageCaption:
		return e.extractCaptions(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown strategy for %s", ErrUnsupportedFormat, req.FileName)
	}
}

func (e *extractor) extractParagraphs(ctx context.Context, req *core.UploadRequest, model string) ([]core.Fragment, error) {
	result, err := e.analyzer.AnalyzeDocument(ctx, model, req.Contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionService, err)
	}

	fragments := make([]core.Fragment, 0, len(result.Paragraphs))
	for _, paragraph := range result.Paragraphs {
		if strings.TrimSpace(paragraph.Contents) == "" {
			continue
		}
		fragments = append(fragments, core.Fragment{
			Contents:   paragraph.Contents,
			SourceFile: req.FileName,
		})
	}

	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExtraction, req.FileName)
	}

	e.logger.Debug("extracted document paragraphs",
		"file", req.FileName,
		"model", model,
		"fragments", len(fragments))
	return fragments, nil
}

func (e *extractor) extractCaptions(ctx context.Context, req *core.UploadRequest) ([]core.Fragment, error) {
	captions, err := e.captioner.DescribeImage(ctx, req.Contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionService, err)
	}

	if len(captions) == 0 {
		e.logger.Warn("image produced no captions, storing placeholder", "file", req.FileName)
		return []core.Fragment{{
			Contents:    placeholderCaption,
			SourceFile:  req.FileName,
			Placeholder: true,
		}}, nil
	}

	fragments := make([]core.Fragment, 0, len(captions))
	for _, caption := range captions {
		if strings.TrimSpace(caption.Text) == "" {
			continue
		}
		fragments = append(fragments, core.Fragment{
			Contents:   caption.Text,
			SourceFile: req.FileName,
		})
	}

	if len(fragments) == 0 {
		return []core.Fragment{{
			Contents:    placeholderCaption,
			SourceFile:  req.FileName,
			Placeholder: true,
		}}, nil
	}

	e.logger.Debug("extracted image captions", "file", req.FileName, "fragments", len(fragments))
	return fragments, nil
}
