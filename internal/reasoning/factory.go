package reasoning

import (
	"context"
	"fmt"
	"os"

	"marketcrew/internal/config"
)

// NewFromConfig builds a Capability from the LLM config section. An empty
// provider falls back to environment detection.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (Capability, error) {
	if cfg.Provider == "" {
		return detectFromEnv(ctx)
	}

	switch cfg.Provider {
	case "openrouter":
		return NewOpenRouterClientWithConfig(OpenRouterConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.TimeoutDuration(),
		}), nil
	case "anthropic":
		return NewAnthropicClientWithConfig(AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.TimeoutDuration(),
		}), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown reasoning provider %q", cfg.Provider)
	}
}

// detectFromEnv checks provider API keys in fixed precedence.
func detectFromEnv(ctx context.Context) (Capability, error) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return NewOpenRouterClient(key), nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropicClient(key), nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return NewGeminiClient(ctx, key, "")
	}
	return nil, fmt.Errorf("no API key found; set one of: OPENROUTER_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY")
}
