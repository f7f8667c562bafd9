package ai

import (
	"fmt"
	"strings"
)

// ProviderConfig selects and configures a Provider.
type ProviderConfig struct {
	Name    string // "gemini" (default) | "openai" | "anthropic"
	APIKey  string
	BaseURL string
	Model   string
}

func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch name := strings.ToLower(strings.TrimSpace(cfg.Name)); name {
	case "", "gemini":
		return NewOpenAIProvider(OpenAIConfig{
			Name:    "gemini",
			APIKey:  cfg.APIKey,
			BaseURL: orDefault(cfg.BaseURL, GeminiBaseURL),
			Model:   orDefault(cfg.Model, DefaultGeminiModel),
		}), nil
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{
			Name:    name,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "anthropic":
		return NewAnthropicProvider(AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Name)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
