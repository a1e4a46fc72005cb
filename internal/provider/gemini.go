package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider with the GenerateContent API
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini translation provider
func NewGeminiProvider(ctx context.Context, config Config) (*GeminiProvider, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, config: config}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string { return Gemini }

// Translate sends the text with the prompt as system instruction.
func (p *GeminiProvider) Translate(ctx context.Context, req Request) (string, error) {
	prompt := SystemPrompt(req.TargetLanguage, rulesOr(req.Rules, p.config.Rules))

	resp, err := p.client.Models.GenerateContent(ctx,
		modelOr(req.Model, modelOr(p.config.Model, DefaultGeminiModel)),
		genai.Text(req.Text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", &ProviderError{Provider: Gemini, Err: err}
	}
	return strings.TrimSpace(resp.Text()), nil
}
