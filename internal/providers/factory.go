package providers

import (
	"fmt"
	"os"
)

// NewFromEnv selects a provider from LLM_PROVIDER (default openai) and
// builds its client from the matching API key. A missing key is an error;
// the caller decides whether to run without an assistant.
func NewFromEnv() (LLMClient, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			model = "gpt-4o"
		}
		baseURL := os.Getenv("OPENAI_BASE_URL") // for OpenAI-compatible APIs
		return NewOpenAIClient(apiKey, model, baseURL), nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		model := os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-3-5-sonnet-20241022"
		}
		return NewAnthropicClient(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
