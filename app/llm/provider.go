package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the search layer needs to call a chat
// model. Any OpenAI-compatible backend can be adapted to it, and tests
// substitute fakes.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

// NewClient builds an OpenAI-compatible client, or nil when no API key is
// configured. A nil Client degrades every consumer to keyword-only behavior.
func NewClient(apiKey, baseURL string) Client {
	if apiKey == "" {
		return nil
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(config)}
}
