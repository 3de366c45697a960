package ai

// Prebuilt analysis models understood by the document analysis service.
// The layout model performs full layout analysis and is used for PDFs;
// the read model performs read-order text extraction and is used for
// office formats.
const (
	ModelPrebuiltDocument = "prebuilt-document"
	ModelPrebuiltRead     = "prebuilt-read"
)

// Paragraph is a single paragraph of text extracted from a document,
// in document reading order.
type Paragraph struct {
	Contents string
}

// AnalysisResult is the completed output of a document analysis run.
type AnalysisResult struct {
	Paragraphs []Paragraph
}

// Caption is one natural-language description of an image with the
// service's confidence in it.
type Caption struct {
	Text       string
	Confidence float64
}
