package models

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/poai/internal/provider"
)

// Lister handles listing the chat models of a provider
type Lister struct {
	config provider.Config
}

// NewLister creates a new model lister
func NewLister(config provider.Config) *Lister {
	if config.Provider == "" {
		config.Provider = provider.DefaultProvider
	}
	return &Lister{config: config}
}

// List returns the sorted IDs of the provider's text generation models.
func (l *Lister) List(ctx context.Context) ([]string, error) {
	name := strings.ToLower(strings.TrimSpace(l.config.Provider))
	if err := provider.Validate(name); err != nil {
		return nil, err
	}
	if l.config.APIKey == "" {
		return nil, fmt.Errorf("missing %s for provider %s", provider.KeyEnv(name), name)
	}

	var (
		ids []string
		err error
	)
	switch name {
	case provider.Anthropic:
		ids, err = l.listAnthropic(ctx)
	case provider.Gemini:
		ids, err = l.listGemini(ctx)
	default:
		ids, err = l.listOpenAI(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// ListAvailableModels prints the provider's models to w, marking the default.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	ids, err := l.List(ctx)
	if err != nil {
		return err
	}

	def := provider.DefaultModel(l.config.Provider)
	fmt.Fprintf(w, "Available %s models:\n", l.config.Provider)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, id := range ids {
		if id == def {
			fmt.Fprintf(w, "  %s (default)\n", id)
		} else {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
	return nil
}

func (l *Lister) listOpenAI(ctx context.Context) ([]string, error) {
	clientConfig := openai.DefaultConfig(l.config.APIKey)
	if l.config.BaseURL != "" {
		clientConfig.BaseURL = l.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, model := range list.Models {
		if isOpenAIChatModel(model.ID) {
			ids = append(ids, model.ID)
		}
	}
	return ids, nil
}

// isOpenAIChatModel filters out embedding, audio, image and moderation models.
func isOpenAIChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "image", "dall-e", "embedding", "whisper", "moderation", "search"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "chatgpt-") ||
		len(id) > 1 && id[0] == 'o' && id[1] >= '0' && id[1] <= '9'
}

func (l *Lister) listAnthropic(ctx context.Context) ([]string, error) {
	opts := []option.RequestOption{option.WithAPIKey(l.config.APIKey)}
	if l.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(l.config.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	var ids []string
	iter := client.Models.ListAutoPaging(ctx, anthropic.ModelListParams{})
	for iter.Next() {
		ids = append(ids, iter.Current().ID)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Lister) listGemini(ctx context.Context) ([]string, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  l.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if l.config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: l.config.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, err
	}

	var ids []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		if !slices.Contains(model.SupportedActions, "generateContent") {
			continue
		}
		ids = append(ids, strings.TrimPrefix(model.Name, "models/"))
	}
	return ids, nil
}
