package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// ErrRemoteCall marks every failure of the outbound model call.
// Parse misses never produce it.
var ErrRemoteCall = errors.New("remote model call failed")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one system+user exchange and returns the generated text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is a single chat-style call
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string // Falls back to the provider's configured model
	MaxTokens   int
	Temperature float32

	// Schema requests a structured JSON reply. Providers without schema
	// support fall back to their plain JSON mode, or ignore it.
	Schema     *jsonschema.Definition
	SchemaName string
}

// CompletionResponse contains the generated text
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
	Structured bool // The provider enforced a JSON reply
}

// APIError is a non-success reply from a provider
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	MaxTokens   int
	Temperature float32

	// StructuredOutput asks the provider for a schema-shaped JSON reply
	StructuredOutput bool

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:         "openai",
		Model:            openaiDefaultModel,
		Timeout:          60,
		MaxTokens:        1000,
		Temperature:      0.7,
		StructuredOutput: true,
	}
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 1000
}
