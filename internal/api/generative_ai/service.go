package generativeAI

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client is the narrow contract the pipeline has on the generative-text
// collaborator. Implementations must treat the response as free-form text;
// callers own fence-stripping and JSON extraction.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var _ Client = (*AIClient)(nil)

type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewAIClient builds a Gemini-backed client. The API key is injected by the
// caller; this package never reads credentials on its own.
func NewAIClient(ctx context.Context, apiKey, model string, temperature float32) (*AIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generative AI API key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// GenerateText sends a single prompt and returns the raw text of the first
// candidate. Transport and API errors are returned as-is for the caller to
// classify.
func (ai *AIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](ai.temperature)}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var txt string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			txt = candidate.Content.Parts[0].Text
			break
		}
	}
	if txt == "" {
		return "", fmt.Errorf("no valid content in AI response")
	}
	return txt, nil
}
