// Package provider sends single translation requests to LLM backends.
// OpenAI, Anthropic and Gemini share one Provider interface and are
// selected by name through New.
package provider
