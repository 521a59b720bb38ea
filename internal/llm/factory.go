package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Diogenes67/aurum-asd/internal/config"
)

// NewClient builds the completion client for the configured provider. The
// huggingface provider is the default deployment target: the HF inference
// router exposes an OpenAI-compatible chat API, so it shares the OpenAI
// client, as does Ollama via its /v1 endpoint.
func NewClient(ctx context.Context, cfg config.LLMConfig) (CompletionClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "huggingface", "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultHFRouterURL
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, baseURL), nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		// Ollama ignores the key but the client config requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
