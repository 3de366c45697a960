package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/chatdocs/ai"
)

const (
	analyzerAPIVersion = "2023-07-31"
	keyHeader          = "Ocp-Apim-Subscription-Key"
)

// Analyzer implements ai.DocumentAnalyzer over the Azure Document
// Intelligence REST API. Analysis is asynchronous on the service side:
// a submit call returns an operation URL which is polled until the
// analysis completes.
type Analyzer struct {
	endpoint     string
	key          string
	pollInterval time.Duration
	client       *http.Client
	logger       *slog.Logger
}

var _ ai.DocumentAnalyzer = (*Analyzer)(nil)

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Analyzer{
		endpoint:     config.DocumentEndpoint,
		key:          config.DocumentKey,
		pollInterval: config.PollInterval,
		client:       &http.Client{},
		logger:       slog.Default().With("component", "azure-analyzer"),
	}, nil
}

// NewAnalyzer creates a document analyzer using the provided configuration.
//
// Returns ai.DocumentAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.DocumentAnalyzer, error) {
	return newAnalyzer(config)
}

type analyzeStatusResponse struct {
	Status        string `json:"status"`
	Error         *serviceError
	AnalyzeResult *struct {
		Paragraphs []struct {
			Content string `json:"content"`
		} `json:"paragraphs"`
	} `json:"analyzeResult"`
}

type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzeDocument submits content for analysis with the given prebuilt model
// and polls the operation until it completes.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, model string, content []byte) (*ai.AnalysisResult, error) {
	a.logger.Debug("submitting document for analysis", "model", model, "bytes", len(content))

	operationURL, err := a.submit(ctx, model, content)
	if err != nil {
		return nil, err
	}

	return a.poll(ctx, operationURL)
}

// submit starts an analysis run and returns the operation URL to poll.
func (a *Analyzer) submit(ctx context.Context, model string, content []byte) (string, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		a.endpoint, model, analyzerAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(keyHeader, a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("document analysis submit failed: status %d: %s", resp.StatusCode, body)
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("document analysis submit: missing Operation-Location header")
	}

	return operationURL, nil
}

// poll fetches the operation status until the analysis succeeds or fails.
func (a *Analyzer) poll(ctx context.Context, operationURL string) (*ai.AnalysisResult, error) {
	for {
		status, err := a.fetchStatus(ctx, operationURL)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case "succeeded":
			result := &ai.AnalysisResult{}
			if status.AnalyzeResult != nil {
				result.Paragraphs = make([]ai.Paragraph, len(status.AnalyzeResult.Paragraphs))
				for i, p := range status.AnalyzeResult.Paragraphs {
					result.Paragraphs[i] = ai.Paragraph{Contents: p.Content}
				}
			}
			a.logger.Debug("document analysis complete", "paragraphs", len(result.Paragraphs))
			return result, nil

		case "failed":
			if status.Error != nil {
				return nil, fmt.Errorf("document analysis failed: %s: %s", status.Error.Code, status.Error.Message)
			}
			return nil, fmt.Errorf("document analysis failed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}
}

func (a *Analyzer) fetchStatus(ctx context.Context, operationURL string) (*analyzeStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(keyHeader, a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("document analysis poll failed: status %d: %s", resp.StatusCode, body)
	}

	var status analyzeStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("document analysis poll: malformed response: %w", err)
	}

	return &status, nil
}
