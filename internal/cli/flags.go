package cli

import (
	"codeberg.org/snonux/poai/internal/batch"
	"codeberg.org/snonux/poai/internal/provider"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Verbose bool

	// Input selection
	File      string
	Directory string
	Include   string
	Language  string

	// Provider flags
	Provider   string
	Model      string
	Rules      string
	ListModels bool

	// Run behaviour
	DryRun            bool
	Concurrency       int
	OnMismatch        string
	FailFast          bool
	RollbackOnFailure bool
	BackupDir         string
	Report            string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Include:     batch.DefaultInclude,
		Provider:    provider.DefaultProvider,
		Concurrency: batch.DefaultConcurrency,
		OnMismatch:  "skip",
	}
}
