package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/chatdocs/auth"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/ingestion"
	"github.com/poiesic/chatdocs/search"
	"github.com/poiesic/chatdocs/storage/badger"
)

type fakeIngestor struct {
	err     error
	lastReq *core.UploadRequest
	calls   int
}

func (f *fakeIngestor) Ingest(ctx context.Context, req *core.UploadRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	if _, ok := auth.PrincipalFrom(ctx); !ok {
		return "", auth.ErrNoPrincipal
	}
	return req.FileName, nil
}

type fakeRetriever struct {
	matches []*core.ChunkMatch
	err     error

	lastConversation string
	lastQuery        string
}

func (f *fakeRetriever) FindSimilar(ctx context.Context, conversationId, query string, maxHits int) ([]*core.ChunkMatch, error) {
	f.lastConversation = conversationId
	f.lastQuery = query
	return f.matches, f.err
}

type apiFixture struct {
	server    *httptest.Server
	ingestor  *fakeIngestor
	retriever *fakeRetriever
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	uploads, backend, err := badger.NewMemoryUploadRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		uploads.Close()
		backend.Close()
	})

	ingestor := &fakeIngestor{}
	retriever := &fakeRetriever{}
	handler := NewHandler(ingestor, retriever, uploads, slog.Default())

	server := httptest.NewServer(SetupRouter(handler, slog.Default()))
	t.Cleanup(server.Close)

	return &apiFixture{server: server, ingestor: ingestor, retriever: retriever}
}

func multipartUpload(t *testing.T, fileName, conversationId string, contents []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("id", conversationId))

	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, fixture *apiFixture, fileName, conversationId, principal string) *http.Response {
	t.Helper()

	body, contentType := multipartUpload(t, fileName, conversationId, []byte("document contents"))
	req, err := http.NewRequest(http.MethodPost, fixture.server.URL+"/api/documents", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if principal != "" {
		req.Header.Set(PrincipalHeader, principal)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandler_UploadDocument(t *testing.T) {
	fixture := newAPIFixture(t)

	resp := doUpload(t, fixture, "report.pdf", "conv-1", "user@example.com")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "report.pdf", payload["fileName"])

	require.NotNil(t, fixture.ingestor.lastReq)
	assert.Equal(t, "report.pdf", fixture.ingestor.lastReq.FileName)
	assert.Equal(t, "conv-1", fixture.ingestor.lastReq.ConversationId)
	assert.Equal(t, []byte("document contents"), fixture.ingestor.lastReq.Contents)
}

func TestHandler_UploadDocument_NoPrincipal(t *testing.T) {
	fixture := newAPIFixture(t)

	resp := doUpload(t, fixture, "report.pdf", "conv-1", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, fixture.ingestor.calls)
}

func TestHandler_UploadDocument_MissingFile(t *testing.T) {
	fixture := newAPIFixture(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("id", "conv-1"))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, fixture.server.URL+"/api/documents", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(PrincipalHeader, "user@example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, fixture.ingestor.calls)
}

func TestHandler_UploadDocument_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported format", fmt.Errorf("%w: csv", ingestion.ErrUnsupportedFormat), http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: %w: 150000000 bytes", core.ErrInvalidUpload, core.ErrFileTooLarge), http.StatusBadRequest},
		{"empty extraction", fmt.Errorf("%w: scan.pdf", ingestion.ErrEmptyExtraction), http.StatusUnprocessableEntity},
		{"extraction service", fmt.Errorf("%w: throttled", ingestion.ErrExtractionService), http.StatusBadGateway},
		{"indexing", fmt.Errorf("%w: write rejected", ingestion.ErrIndexing), http.StatusBadGateway},
		{"record persist", fmt.Errorf("%w: closed", ingestion.ErrRecordPersist), http.StatusInternalServerError},
		{"no principal", auth.ErrNoPrincipal, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAPIFixture(t)
			fixture.ingestor.err = tt.err

			resp := doUpload(t, fixture, "report.pdf", "conv-1", "user@example.com")
			assert.Equal(t, tt.status, resp.StatusCode)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func TestHandler_ListDocuments(t *testing.T) {
	fixture := newAPIFixture(t)

	req, err := http.NewRequest(http.MethodGet, fixture.server.URL+"/api/conversations/conv-1/documents", nil)
	require.NoError(t, err)
	req.Header.Set(PrincipalHeader, "user@example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var records []*core.UploadRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Empty(t, records)
}

func TestHandler_SearchDocuments(t *testing.T) {
	fixture := newAPIFixture(t)
	fixture.retriever.matches = []*core.ChunkMatch{
		{Record: &core.ChunkRecord{Id: "c1", Contents: "revenue grew"}, Score: 0.9},
	}

	body := strings.NewReader(`{"query":"revenue","maxHits":5}`)
	req, err := http.NewRequest(http.MethodPost, fixture.server.URL+"/api/conversations/conv-1/search", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(PrincipalHeader, "user@example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "conv-1", fixture.retriever.lastConversation)
	assert.Equal(t, "revenue", fixture.retriever.lastQuery)

	var matches []*core.ChunkMatch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "c1", matches[0].Record.Id)
}

func TestHandler_SearchDocuments_EmptyQuery(t *testing.T) {
	fixture := newAPIFixture(t)
	fixture.retriever.err = search.ErrEmptyQuery

	body := strings.NewReader(`{"query":""}`)
	req, err := http.NewRequest(http.MethodPost, fixture.server.URL+"/api/conversations/conv-1/search", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(PrincipalHeader, "user@example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_DeleteDocument_NotFound(t *testing.T) {
	fixture := newAPIFixture(t)

	req, err := http.NewRequest(http.MethodDelete, fixture.server.URL+"/api/documents/missing", nil)
	require.NoError(t, err)
	req.Header.Set(PrincipalHeader, "user@example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	fixture := newAPIFixture(t)

	resp, err := http.Get(fixture.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
