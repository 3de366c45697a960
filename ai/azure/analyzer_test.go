package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/chatdocs/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) *ai.Config {
	return ai.NewConfig(
		ai.WithDocumentService(endpoint, "test-key"),
		ai.WithVisionService(endpoint, "test-key"),
		ai.WithPollInterval(5*time.Millisecond),
	)
}

func TestAnalyzer_AnalyzeDocument(t *testing.T) {
	var polls atomic.Int32

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-document:analyze", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		w.Header().Set("Operation-Location", server.URL+"/operations/op-1")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			fmt.Fprint(w, `{"status":"running"}`)
			return
		}
		fmt.Fprint(w, `{"status":"succeeded","analyzeResult":{"paragraphs":[{"content":"first paragraph"},{"content":"second paragraph"}]}}`)
	})

	analyzer, err := NewAnalyzer(testConfig(server.URL))
	require.NoError(t, err)

	result, err := analyzer.AnalyzeDocument(context.Background(), ai.ModelPrebuiltDocument, []byte("%PDF-1.7"))
	require.NoError(t, err)
	require.Len(t, result.Paragraphs, 2)
	assert.Equal(t, "first paragraph", result.Paragraphs[0].Contents)
	assert.Equal(t, "second paragraph", result.Paragraphs[1].Contents)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestAnalyzer_AnalyzeDocument_NoParagraphs(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-read:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/op-2")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op-2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"succeeded","analyzeResult":{}}`)
	})

	analyzer, err := NewAnalyzer(testConfig(server.URL))
	require.NoError(t, err)

	result, err := analyzer.AnalyzeDocument(context.Background(), ai.ModelPrebuiltRead, []byte("data"))
	require.NoError(t, err)
	assert.Empty(t, result.Paragraphs)
}

func TestAnalyzer_AnalyzeDocument_Failed(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-document:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/op-3")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op-3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"failed","error":{"code":"InvalidContent","message":"corrupt file"}}`)
	})

	analyzer, err := NewAnalyzer(testConfig(server.URL))
	require.NoError(t, err)

	_, err = analyzer.AnalyzeDocument(context.Background(), ai.ModelPrebuiltDocument, []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidContent")
}

func TestAnalyzer_AnalyzeDocument_SubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	analyzer, err := NewAnalyzer(testConfig(server.URL))
	require.NoError(t, err)

	_, err = analyzer.AnalyzeDocument(context.Background(), ai.ModelPrebuiltDocument, []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestAnalyzer_AnalyzeDocument_ContextCancelled(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-document:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/op-4")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op-4", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"running"}`)
	})

	analyzer, err := NewAnalyzer(testConfig(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = analyzer.AnalyzeDocument(ctx, ai.ModelPrebuiltDocument, []byte("data"))
	require.Error(t, err)
}
