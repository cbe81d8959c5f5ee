package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlannerClientInterface is the single seam to the generative itinerary
// provider. Implementations return the raw model text; normalization and
// extraction happen in the service layer.
type PlannerClientInterface interface {
	GeneratePlan(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewPlannerClient builds either the OpenAI or Gemini planner based on config.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
