package translation

import "fmt"

// ConfigurationError reports that no target language could be resolved for a file.
type ConfigurationError struct {
	FilePath string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no target language for %s: provide --language or set the Language header", e.FilePath)
}
