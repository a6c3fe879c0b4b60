package llm

import (
	"context"
	"fmt"

	"github.com/AnshRaj112/feedbackhub-backend/internal/config"
)

// NewFromConfig builds the configured provider wrapped in Resilient. A missing
// API key degrades to Disabled so the service still answers from its fallbacks.
func NewFromConfig(ctx context.Context, cfg *config.Config) (ChatModel, error) {
	var (
		provider ChatModel
		err      error
	)

	switch cfg.LLMProvider {
	case "", "none":
		return Disabled{}, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Disabled{}, nil
		}
		provider, err = NewOpenAI(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return Disabled{}, nil
		}
		provider, err = NewAnthropic(cfg.AnthropicAPIKey, cfg.LLMModel)
	case "google", "gemini":
		if cfg.GoogleAPIKey == "" {
			return Disabled{}, nil
		}
		provider, err = NewGoogle(ctx, cfg.GoogleAPIKey, cfg.LLMModel)
	case "azure":
		if cfg.AzureAPIKey == "" || cfg.AzureEndpoint == "" {
			return Disabled{}, nil
		}
		provider, err = NewAzure(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}

	return NewResilient(provider, ResilientConfig{
		Timeout:         cfg.LLMTimeout,
		MaxRetries:      cfg.LLMMaxRetries,
		RatePerSecond:   cfg.LLMRatePerSecond,
		Burst:           cfg.LLMBurst,
		BreakerFailures: cfg.LLMBreakerFailures,
	}), nil
}
