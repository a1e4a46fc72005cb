package provider

import (
	"fmt"
	"strings"
)

// SystemPrompt builds the instruction sent with every translation request.
func SystemPrompt(targetLanguage, rules string) string {
	prompt := fmt.Sprintf(`Translate into %s. Only output the translation text. Do not translate text inside curly braces or ICU placeholders. Example: "Hello {name}" should keep {name} unchanged. Maintain surrounding punctuation. Make translation concise while preserving full meaning.`, targetLanguage)

	if rules = strings.TrimSpace(rules); rules != "" {
		prompt += "\n\nAdditional translation rules:\n" + rules
	}
	return prompt
}
