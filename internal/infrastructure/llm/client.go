package llm

import "context"

// Client is the narrow text-generation boundary: a single request/response
// call that returns JSON conforming to the supplied schema. Implementations
// do not retry; callers treat any failure as non-fatal.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) ([]byte, error)
}

// Schema is the subset of the structured-output schema grammar this service
// needs to constrain model responses.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}
