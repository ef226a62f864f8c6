package llm

import "time"

// Provider constants
const (
	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderOllama represents a local Ollama server
	ProviderOllama = "ollama"
)

// DefaultOllamaURL is the default URL for an Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultRequestTimeout bounds a single completion call. Past it the caller
// falls back to a local opinion instead of hanging the review.
const DefaultRequestTimeout = 60 * time.Second

// DefaultModelForProvider returns the default model ID for a given provider.
func DefaultModelForProvider(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	case ProviderOllama:
		return "llama3.1"
	default:
		return ""
	}
}
