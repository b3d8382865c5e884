package docgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGenerate(t *testing.T) {
	quoteID := uuid.New()
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"pdf_url": "https://docs.example.com/q.pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")

	url, err := client.Generate(context.Background(), quoteID)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/q.pdf", url)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, quoteID.String(), gotBody["quote_id"])
}

func TestClientGenerateWithoutAPIKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"pdf_url": "https://docs.example.com/q.pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Generate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientGenerateNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Generate(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClientGenerateMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Generate(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document URL")
}
