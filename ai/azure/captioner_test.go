package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptioner_DescribeImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vision/v3.2/describe", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		fmt.Fprint(w, `{"description":{"captions":[{"text":"a dog on a beach","confidence":0.93},{"text":"a dog","confidence":0.71}]}}`)
	}))
	defer server.Close()

	captioner, err := NewCaptioner(testConfig(server.URL))
	require.NoError(t, err)

	captions, err := captioner.DescribeImage(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.Len(t, captions, 2)
	assert.Equal(t, "a dog on a beach", captions[0].Text)
	assert.InDelta(t, 0.93, captions[0].Confidence, 0.001)
}

func TestCaptioner_DescribeImage_NoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"description":{"captions":[]}}`)
	}))
	defer server.Close()

	captioner, err := NewCaptioner(testConfig(server.URL))
	require.NoError(t, err)

	captions, err := captioner.DescribeImage(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Empty(t, captions)
}

func TestCaptioner_DescribeImage_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	captioner, err := NewCaptioner(testConfig(server.URL))
	require.NoError(t, err)

	_, err = captioner.DescribeImage(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
