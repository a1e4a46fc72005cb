package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/poai/internal/translation"
)

func TestNewReport(t *testing.T) {
	results := []translation.Result{
		{FilePath: "/tmp/de.po", Language: "de", Processed: 3, Total: 3},
		{FilePath: "/tmp/fr.po", Language: "fr", Processed: 2, Total: 2},
		{FilePath: "/tmp/xx.po", Skipped: true},
	}

	r := NewReport("openai", "gpt-4o-mini", false, time.Now(), results, nil)
	if r.Translated != 5 {
		t.Errorf("Translated = %d, want 5", r.Translated)
	}
	if r.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", r.Skipped)
	}
	if r.Error != "" {
		t.Errorf("Error = %q, want empty", r.Error)
	}

	failed := NewReport("openai", "", false, time.Now(), nil, errors.New("boom"))
	if failed.Error != "boom" {
		t.Errorf("Error = %q, want boom", failed.Error)
	}
	if failed.Files == nil {
		t.Error("Files should be an empty list, not nil")
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	results := []translation.Result{
		{FilePath: "/tmp/de.po", Language: "de", Processed: 1, Total: 1, DryRun: true},
	}
	r := NewReport("gemini", "gemini-2.0-flash", true, time.Now(), results, nil)

	if err := WriteReport(path, r); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var got struct {
		Provider   string `yaml:"provider"`
		DryRun     bool   `yaml:"dry_run"`
		Translated int    `yaml:"translated"`
		Files      []struct {
			File      string `yaml:"file"`
			Language  string `yaml:"language"`
			Processed int    `yaml:"processed"`
		} `yaml:"files"`
	}
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}

	if got.Provider != "gemini" || !got.DryRun || got.Translated != 1 {
		t.Errorf("unexpected report header: %+v", got)
	}
	if len(got.Files) != 1 || got.Files[0].File != "/tmp/de.po" || got.Files[0].Language != "de" {
		t.Errorf("unexpected files: %+v", got.Files)
	}
}

func TestWriteReportBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.yaml")
	if err := WriteReport(path, NewReport("openai", "", false, time.Now(), nil, nil)); err == nil {
		t.Error("Expected error for unwritable path")
	}
}
