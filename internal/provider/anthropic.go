package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-20241022"

const anthropicMaxTokens = 1024

// AnthropicProvider implements Provider with the messages API
type AnthropicProvider struct {
	client anthropic.Client
	config Config
}

// NewAnthropicProvider creates a new Anthropic translation provider
func NewAnthropicProvider(config Config) *AnthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		config: config,
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string { return Anthropic }

// Translate sends one message and returns the first text block of the reply.
func (p *AnthropicProvider) Translate(ctx context.Context, req Request) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelOr(req.Model, modelOr(p.config.Model, DefaultAnthropicModel))),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(req.TargetLanguage, rulesOr(req.Rules, p.config.Rules))},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Text)),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: Anthropic, Err: err}
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", nil
}
