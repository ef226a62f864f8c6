// Package llm provides a unified completion interface over LLM providers
// using CloudWeGo Eino.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Config holds configuration for creating a completion client.
type Config struct {
	Provider    string
	Model       string
	APIKey      string  // Required for OpenAI and Anthropic
	BaseURL     string  // Required for Ollama (default: http://localhost:11434)
	Temperature float32
}

// Request is one completion call: an optional system prompt plus the user
// prompt.
type Request struct {
	System string
	Prompt string
}

// Completer produces one free-text completion for a request. Implementations
// must respect ctx cancellation and deadlines.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// NewChatModel creates an Eino ChatModel based on the provider configuration.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModelForProvider(cfg.Provider)
	}
	temp := cfg.Temperature

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       modelName,
			APIKey:      cfg.APIKey,
			Temperature: &temp,
		})

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       modelName,
			MaxTokens:   4096,
			Temperature: &temp,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   modelName,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
	}
}

// chatCompleter adapts an Eino chat model to the Completer interface.
type chatCompleter struct {
	model model.BaseChatModel
}

// NewCompleter builds a Completer from the provider configuration.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &chatCompleter{model: cm}, nil
}

func (c *chatCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var messages []*schema.Message
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.Prompt))

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	return resp.Content, nil
}
