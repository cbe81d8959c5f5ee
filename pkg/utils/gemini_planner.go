package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiPlannerClient implements PlannerClientInterface using Google's Gemini models
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

// NewGeminiPlannerClient creates a new Gemini client
func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

// GeneratePlan sends one composed prompt and returns the raw model text.
// The itinerary prose plus labeled data blocks come back as a single string.
func (c *GeminiPlannerClient) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.4)
	m.SetTopP(0.8)
	m.SetTopK(20)
	m.SetMaxOutputTokens(4096)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrPlannerUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: candidate carried no text parts", ErrPlannerUnavailable)
	}

	return sb.String(), nil
}

// classifyGeminiError folds SDK errors into the two user-facing cases. A
// rejected key must surface differently from a flaky network.
func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return fmt.Errorf("%w: %v", ErrPlannerAuth, err)
	}
	// Gemini reports bad keys as 400 with this phrase rather than 401.
	if strings.Contains(err.Error(), "API key") {
		return fmt.Errorf("%w: %v", ErrPlannerAuth, err)
	}
	return fmt.Errorf("%w: %v", ErrPlannerUnavailable, err)
}

// Close closes the underlying Gemini client.
func (c *GeminiPlannerClient) Close() error {
	return c.client.Close()
}
