package provider

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIProvider implements Provider with the chat completions API
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI translation provider
func NewOpenAIProvider(config Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return OpenAI }

// Translate sends the system prompt and the text as one chat completion.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelOr(req.Model, modelOr(p.config.Model, DefaultOpenAIModel)),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt(req.TargetLanguage, rulesOr(req.Rules, p.config.Rules)),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Text,
			},
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: OpenAI, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
