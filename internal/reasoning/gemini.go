package reasoning

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Capability using Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed capability.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete sends one GenerateContent round trip with the role binding as
// the system instruction.
func (c *GeminiClient) Complete(ctx context.Context, comp Completion) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(comp.userPrompt()),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(comp.systemPrompt(), genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(text), nil
}
