package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientGenerateJSON(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "[{\"productId\":\"abc\",\"quantity\":2}]"}]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)
	schema := &Schema{Type: "ARRAY", Items: &Schema{Type: "OBJECT"}}

	raw, err := client.GenerateJSON(context.Background(), "suggest towels", schema)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"abc","quantity":2}]`, string(raw))

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	contents := gotBody["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, "suggest towels", parts[0].(map[string]interface{})["text"])

	genConfig := gotBody["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	assert.Equal(t, "ARRAY", genConfig["responseSchema"].(map[string]interface{})["type"])
}

func TestGeminiClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("k", "gemini-2.5-flash", server.URL)

	_, err := client.GenerateJSON(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("k", "gemini-2.5-flash", server.URL)

	_, err := client.GenerateJSON(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty candidates")
}

func TestGeminiClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("k", "gemini-2.5-flash", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateJSON(ctx, "prompt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
