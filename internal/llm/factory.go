package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/authorscope/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model configuration to llm.Config.
// Missing credentials are filled from the provider's usual environment variables.
func ConfigFromModel(cfg *model.Config) Config {
	c := Config{
		Provider:         cfg.LLM.Provider,
		Model:            cfg.LLM.Model,
		APIKey:           cfg.LLM.APIKey,
		BaseURL:          cfg.LLM.BaseURL,
		Timeout:          cfg.LLM.Timeout,
		MaxTokens:        cfg.LLM.MaxTokens,
		Temperature:      cfg.LLM.Temperature,
		StructuredOutput: cfg.LLM.StructuredOutput,
		HTTPProxy:        cfg.HTTP.HTTPProxy,
		HTTPSProxy:       cfg.HTTP.HTTPSProxy,
		NoProxy:          cfg.HTTP.NoProxy,
	}

	switch strings.ToLower(c.Provider) {
	case "openai", "":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return c
}
