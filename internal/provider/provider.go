package provider

import (
	"context"
	"fmt"
	"strings"
)

// Names of the supported backends.
const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
	Gemini    = "gemini"
)

// DefaultProvider is used when no provider is configured.
const DefaultProvider = OpenAI

// Request is one text to translate.
type Request struct {
	Text           string
	TargetLanguage string
	// Model overrides the backend's default model when non-empty.
	Model string
	// Rules are extra free-text instructions appended to the prompt.
	Rules string
}

// Provider defines the interface for translation backends
type Provider interface {
	// Translate sends the prompt and text in one request and returns the
	// trimmed translation.
	Translate(ctx context.Context, req Request) (string, error)

	// Name returns the provider name
	Name() string
}

// Config selects and configures a backend for one invocation.
type Config struct {
	Provider string // "openai", "anthropic" or "gemini"
	Model    string // backend default when empty
	Rules    string
	APIKey   string
	// BaseURL points the client at a different endpoint, mostly for tests.
	BaseURL string
}

// Names lists the supported providers, default first.
func Names() []string {
	return []string{OpenAI, Anthropic, Gemini}
}

// KeyEnv returns the environment variable holding the API key of a provider.
func KeyEnv(name string) string {
	switch normalize(name) {
	case Anthropic:
		return "ANTHROPIC_API_KEY"
	case Gemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// DefaultModel returns the model a backend uses when none is configured.
func DefaultModel(name string) string {
	switch normalize(name) {
	case Anthropic:
		return DefaultAnthropicModel
	case Gemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}

// Validate checks that name refers to a known backend.
func Validate(name string) error {
	switch normalize(name) {
	case OpenAI, Anthropic, Gemini:
		return nil
	default:
		return &ConfigurationError{Provider: name}
	}
}

// New creates the backend named in the configuration.
func New(ctx context.Context, cfg Config) (Provider, error) {
	name := normalize(cfg.Provider)
	if err := Validate(name); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing %s for provider %s", KeyEnv(name), name)
	}

	switch name {
	case Anthropic:
		return NewAnthropicProvider(cfg), nil
	case Gemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return NewOpenAIProvider(cfg), nil
	}
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultProvider
	}
	return name
}

func modelOr(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

func rulesOr(rules, fallback string) string {
	if strings.TrimSpace(rules) != "" {
		return rules
	}
	return fallback
}
