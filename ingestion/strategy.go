package ingestion

import (
	"fmt"
	"strings"

	"github.com/poiesic/chatdocs/ai"
)

// Strategy selects how content is pulled out of an uploaded file.
type Strategy int

const (
	// StrategyStructuredDocument runs the file through document analysis
	// and collects the recognized paragraphs.
	StrategyStructuredDocument Strategy = iota + 1

	// StrategyImageCaption describes the image and uses the generated
	// captions as content.
	StrategyImageCaption
)

func (s Strategy) String() string {
	switch s {
	case StrategyStructuredDocument:
		return "structured-document"
	case StrategyImageCaption:
		return "image-caption"
	default:
		return "unknown"
	}
}

// Format pairs an extraction strategy with the analysis model it needs.
// Model is empty for image captioning.
type Format struct {
	Strategy Strategy
	Model    string
}

// ResolveFormat maps a file name to its extraction format based on the
// extension. Matching is case-insensitive. Unknown extensions return
// ErrUnsupportedFormat naming the offending extension.
func ResolveFormat(fileName string) (Format, error) {
	ext := strings.ToLower(extension(fileName))
	switch ext {
	case "pdf":
		return Format{Strategy: StrategyStructuredDocument, Model: ai.ModelPrebuiltDocument}, nil
	case "xls", "xlsx", "doc", "docx", "ppt", "pptx":
		return Format{Strategy: StrategyStructuredDocument, Model: ai.ModelPrebuiltRead}, nil
	case "png", "jpg", "jpeg":
		return Format{Strategy: StrategyImageCaption}, nil
	default:
		return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func extension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return fileName[idx+1:]
}
