package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/storage"
)

// deleteSearchLimit bounds how many chunk ids one DeleteBySource pass collects.
const deleteSearchLimit = 1000

// Client implements storage.VectorStore over the Azure Cognitive Search
// REST API. Chunk records are written with the mergeOrUpload action, so
// re-adding a record with the same id replaces it.
type Client struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

var _ storage.VectorStore = (*Client)(nil)

// NewClient creates a vector store client for the configured search index.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		client: &http.Client{},
		logger: slog.Default().With("component", "azsearch"),
	}, nil
}

type indexBatchResponse struct {
	Value []struct {
		Key          string `json:"key"`
		Status       bool   `json:"status"`
		ErrorMessage string `json:"errorMessage"`
		StatusCode   int    `json:"statusCode"`
	} `json:"value"`
}

// AddDocuments writes chunk records to the search index.
// Every record must already carry a non-empty embedding vector.
func (c *Client) AddDocuments(ctx context.Context, records ...*core.ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	actions := make([]map[string]any, len(records))
	for i, record := range records {
		if len(record.Vector) == 0 {
			return fmt.Errorf("%w: record %s has no embedding", storage.ErrWriteRejected, record.Id)
		}
		actions[i] = map[string]any{
			"@search.action":     "mergeOrUpload",
			"id":                 record.Id,
			"conversationId":     record.ConversationId,
			"userId":             record.UserId,
			"content":            record.Contents,
			"sourceFile":         record.SourceFile,
			"placeholder":        record.Placeholder,
			c.config.VectorField: record.Vector,
		}
	}

	return c.submitBatch(ctx, actions)
}

// DeleteBySource removes all chunk records for one source file within a
// conversation.
func (c *Client) DeleteBySource(ctx context.Context, conversationId, sourceFile string) error {
	filter := fmt.Sprintf("conversationId eq '%s' and sourceFile eq '%s'",
		escapeODataString(conversationId), escapeODataString(sourceFile))

	ids, err := c.searchIds(ctx, filter)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	actions := make([]map[string]any, len(ids))
	for i, id := range ids {
		actions[i] = map[string]any{
			"@search.action": "delete",
			"id":             id,
		}
	}

	c.logger.Debug("deleting chunk records", "conversation", conversationId, "sourceFile", sourceFile, "count", len(ids))
	return c.submitBatch(ctx, actions)
}

// SimilaritySearch finds chunk records most similar to the given vector
// within one conversation.
func (c *Client) SimilaritySearch(ctx context.Context, vector []float32, conversationId string, limit int) ([]*core.ChunkMatch, error) {
	body := map[string]any{
		"vectors": []map[string]any{
			{
				"value":  vector,
				"fields": c.config.VectorField,
				"k":      limit,
			},
		},
		"filter": fmt.Sprintf("conversationId eq '%s'", escapeODataString(conversationId)),
		"select": "id,conversationId,userId,content,sourceFile,placeholder",
		"top":    limit,
	}

	var response struct {
		Value []struct {
			Score          float32 `json:"@search.score"`
			Id             string  `json:"id"`
			ConversationId string  `json:"conversationId"`
			UserId         string  `json:"userId"`
			Content        string  `json:"content"`
			SourceFile     string  `json:"sourceFile"`
			Placeholder    bool    `json:"placeholder"`
		} `json:"value"`
	}

	if err := c.post(ctx, "/docs/search", body, &response); err != nil {
		return nil, err
	}

	matches := make([]*core.ChunkMatch, len(response.Value))
	for i, hit := range response.Value {
		matches[i] = &core.ChunkMatch{
			Record: &core.ChunkRecord{
				Id:             hit.Id,
				ConversationId: hit.ConversationId,
				UserId:         hit.UserId,
				Contents:       hit.Content,
				SourceFile:     hit.SourceFile,
				Placeholder:    hit.Placeholder,
			},
			Score: hit.Score,
		}
	}
	return matches, nil
}

// submitBatch posts an action batch to the index and surfaces per-record
// failures. Partial success is possible; failed keys are reported in the
// returned error.
func (c *Client) submitBatch(ctx context.Context, actions []map[string]any) error {
	var response indexBatchResponse
	if err := c.post(ctx, "/docs/index", map[string]any{"value": actions}, &response); err != nil {
		return err
	}

	var failed []string
	for _, result := range response.Value {
		if !result.Status {
			failed = append(failed, fmt.Sprintf("%s (%d: %s)", result.Key, result.StatusCode, result.ErrorMessage))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", storage.ErrWriteRejected, strings.Join(failed, "; "))
	}
	return nil
}

// searchIds returns the ids of all records matching the filter.
func (c *Client) searchIds(ctx context.Context, filter string) ([]string, error) {
	body := map[string]any{
		"filter": filter,
		"select": "id",
		"top":    deleteSearchLimit,
	}

	var response struct {
		Value []struct {
			Id string `json:"id"`
		} `json:"value"`
	}

	if err := c.post(ctx, "/docs/search", body, &response); err != nil {
		return nil, err
	}

	ids := make([]string, len(response.Value))
	for i, hit := range response.Value {
		ids[i] = hit.Id
	}
	return ids, nil
}

// post sends a JSON request to an index operation endpoint.
func (c *Client) post(ctx context.Context, operation string, reqBody, respBody any) error {
	url := fmt.Sprintf("%s/indexes/%s%s?api-version=%s",
		c.config.Endpoint, c.config.IndexName, operation, c.config.APIVersion)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 207 carries per-record statuses which submitBatch inspects
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("search service returned status %d: %s", resp.StatusCode, body)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("malformed search service response: %w", err)
		}
	}
	return nil
}

// escapeODataString doubles single quotes for OData filter literals.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
