package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	ExtractCriteria(ctx context.Context, description string) (CriteriaResponse, error)
}

// CriteriaResponse mirrors the JSON object the model is asked to return.
// Interests are raw strings; category derivation happens in the extractor,
// never in the model response.
type CriteriaResponse struct {
	Age          *int     `json:"age"`
	MaxPrice     *float64 `json:"max_price"`
	Gender       string   `json:"gender"`
	Occasion     string   `json:"occasion"`
	Relationship string   `json:"relationship"`
	Interests    []string `json:"interests"`
}
