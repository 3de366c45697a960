package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/poiesic/chatdocs/ai"
)

// maxCaptionCandidates bounds how many captions the vision service returns.
const maxCaptionCandidates = 3

// Captioner implements ai.ImageCaptioner over the Azure Computer Vision
// describe-image REST API.
type Captioner struct {
	endpoint string
	key      string
	client   *http.Client
	logger   *slog.Logger
}

var _ ai.ImageCaptioner = (*Captioner)(nil)

// newCaptioner is an internal constructor that returns the concrete type.
func newCaptioner(config *ai.Config) (*Captioner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Captioner{
		endpoint: config.VisionEndpoint,
		key:      config.VisionKey,
		client:   &http.Client{},
		logger:   slog.Default().With("component", "azure-captioner"),
	}, nil
}

// NewCaptioner creates an image captioner using the provided configuration.
//
// Returns ai.ImageCaptioner interface to enforce abstraction.
func NewCaptioner(config *ai.Config) (ai.ImageCaptioner, error) {
	return newCaptioner(config)
}

type describeResponse struct {
	Description struct {
		Captions []struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"captions"`
	} `json:"description"`
}

// DescribeImage submits raw image bytes and returns the service's captions.
// An empty slice is a valid response for images the service cannot describe.
func (c *Captioner) DescribeImage(ctx context.Context, content []byte) ([]ai.Caption, error) {
	c.logger.Debug("describing image", "bytes", len(content))

	url := fmt.Sprintf("%s/vision/v3.2/describe?maxCandidates=%d", c.endpoint, maxCaptionCandidates)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(keyHeader, c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image describe failed: status %d: %s", resp.StatusCode, body)
	}

	var described describeResponse
	if err := json.NewDecoder(resp.Body).Decode(&described); err != nil {
		return nil, fmt.Errorf("image describe: malformed response: %w", err)
	}

	captions := make([]ai.Caption, len(described.Description.Captions))
	for i, caption := range described.Description.Captions {
		captions[i] = ai.Caption{Text: caption.Text, Confidence: caption.Confidence}
	}

	c.logger.Debug("image described", "captions", len(captions))
	return captions, nil
}
