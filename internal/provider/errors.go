package provider

import "fmt"

// ProviderError wraps a failed backend call. The backend error is kept
// unmodified and is reachable through errors.Unwrap.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s translation request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ConfigurationError reports an unknown provider name.
type ConfigurationError struct {
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown provider %q (supported: openai, anthropic, gemini)", e.Provider)
}
