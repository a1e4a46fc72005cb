package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/poai/internal/translation"
)

// Report is the YAML summary written by --report.
type Report struct {
	Provider   string               `yaml:"provider"`
	Model      string               `yaml:"model,omitempty"`
	DryRun     bool                 `yaml:"dry_run"`
	StartedAt  time.Time            `yaml:"started_at"`
	Duration   string               `yaml:"duration"`
	Translated int                  `yaml:"translated"`
	Skipped    int                  `yaml:"skipped"`
	RolledBack bool                 `yaml:"rolled_back,omitempty"`
	Error      string               `yaml:"error,omitempty"`
	Files      []translation.Result `yaml:"files"`
}

// NewReport summarizes the results of a run.
func NewReport(providerName, model string, dryRun bool, started time.Time, results []translation.Result, runErr error) *Report {
	r := &Report{
		Provider:  providerName,
		Model:     model,
		DryRun:    dryRun,
		StartedAt: started.UTC().Truncate(time.Second),
		Duration:  time.Since(started).Round(time.Millisecond).String(),
		Files:     results,
	}
	if r.Files == nil {
		r.Files = []translation.Result{}
	}
	for _, res := range results {
		if res.Skipped {
			r.Skipped++
			continue
		}
		r.Translated += res.Processed
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// WriteReport writes r as YAML to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
