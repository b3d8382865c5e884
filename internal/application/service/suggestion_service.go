package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/infrastructure/llm"
	"github.com/solines/hotelquote-api/pkg/apperror"
)

// Suggestion is one proposed (product, quantity) pair from a free-text
// request
type Suggestion struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// SuggestionService turns a free-text request plus the current catalog into
// candidate line items via a structured-output text-generation call. The
// model may hallucinate product ids, so every suggestion is checked against
// the catalog and silently dropped on mismatch. Failures never touch the
// caller's ledger: results are only handed back after the whole response
// parses.
type SuggestionService struct {
	client llm.Client
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(client llm.Client) *SuggestionService {
	return &SuggestionService{client: client}
}

// suggestionSchema constrains the model to a JSON array of
// {productId, quantity} objects
var suggestionSchema = &llm.Schema{
	Type: "ARRAY",
	Items: &llm.Schema{
		Type: "OBJECT",
		Properties: map[string]*llm.Schema{
			"productId": {
				Type:        "STRING",
				Description: "The ID of the suggested product.",
			},
			"quantity": {
				Type:        "NUMBER",
				Description: "The suggested quantity for the product.",
			},
		},
		Required: []string{"productId", "quantity"},
	},
}

type rawSuggestion struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// Suggest asks the model for candidate line items for the request, given the
// catalog the viewer can see. An empty or fully-hallucinated response yields
// ErrNoSuggestions; a transport or parse failure yields a suggestion error.
// Both are non-fatal to the caller.
func (s *SuggestionService) Suggest(ctx context.Context, request string, products []entity.Product) ([]Suggestion, error) {
	if strings.TrimSpace(request) == "" || len(products) == 0 {
		return nil, apperror.ErrNoSuggestions
	}

	raw, err := s.client.GenerateJSON(ctx, buildSuggestionPrompt(request, products), suggestionSchema)
	if err != nil {
		return nil, apperror.NewSuggestionError(err)
	}

	var rawSuggestions []rawSuggestion
	if err := json.Unmarshal(raw, &rawSuggestions); err != nil {
		return nil, apperror.NewSuggestionError(fmt.Errorf("unparseable response: %w", err))
	}

	known := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		known[products[i].ID] = true
	}

	suggestions := make([]Suggestion, 0, len(rawSuggestions))
	for _, rs := range rawSuggestions {
		id, err := uuid.Parse(rs.ProductID)
		if err != nil || !known[id] {
			// Hallucinated or malformed id
			continue
		}
		quantity := int(math.Round(rs.Quantity))
		if quantity <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{ProductID: id, Quantity: quantity})
	}

	if len(suggestions) == 0 {
		return nil, apperror.ErrNoSuggestions
	}
	return suggestions, nil
}

// buildSuggestionPrompt lists the catalog with ids and tags so the model can
// only pick from real products
func buildSuggestionPrompt(request string, products []entity.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the user request: %q, suggest products from the following list. ", request)
	sb.WriteString("Only include products that are explicitly mentioned or clearly implied. ")
	sb.WriteString("For each suggested product, provide its ID and a reasonable quantity.\n\nAvailable Products:\n")
	for i := range products {
		tags := "N/A"
		if len(products[i].Tags) > 0 {
			tags = strings.Join(products[i].Tags, ", ")
		}
		fmt.Fprintf(&sb, "- %s (ID: %s, Tags: %s)\n", products[i].Name, products[i].ID, tags)
	}
	return sb.String()
}
