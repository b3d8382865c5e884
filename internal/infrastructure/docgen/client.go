package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Generator renders a persisted quote into a downloadable document and
// returns its URL. The document's format and content are owned by the
// remote service; this client only carries the quote id across.
type Generator interface {
	Generate(ctx context.Context, quoteID uuid.UUID) (string, error)
}

// Client calls the external document-generation service over HTTP
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates a document-generation client for the given endpoint
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	QuoteID string `json:"quote_id"`
}

type generateResponse struct {
	PDFURL string `json:"pdf_url"`
}

// Generate requests document generation for the quote and returns the
// document URL
func (c *Client) Generate(ctx context.Context, quoteID uuid.UUID) (string, error) {
	jsonBody, err := json.Marshal(generateRequest{QuoteID: quoteID.String()})
	if err != nil {
		return "", fmt.Errorf("docgen: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("docgen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("docgen error: %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("docgen: decode response: %w", err)
	}

	if genResp.PDFURL == "" {
		return "", fmt.Errorf("docgen: no document URL in response")
	}

	return genResp.PDFURL, nil
}
