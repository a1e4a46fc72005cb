package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/snonux/poai/internal/archive"
	"codeberg.org/snonux/poai/internal/batch"
	"codeberg.org/snonux/poai/internal/catalog"
	"codeberg.org/snonux/poai/internal/cli"
	"codeberg.org/snonux/poai/internal/provider"
	"codeberg.org/snonux/poai/internal/translation"
)

// Processor runs one invocation of poai
type Processor struct {
	flags      *cli.Flags
	provider   provider.Provider
	translator *translation.Translator
	journal    *archive.Journal
	logger     zerolog.Logger
	out        io.Writer
}

// Validate checks the command-line selection before any I/O.
func Validate(flags *cli.Flags) error {
	switch {
	case flags.File != "" && flags.Directory != "":
		return &UsageError{Msg: "please specify either --file or --directory, not both"}
	case flags.File == "" && flags.Directory == "":
		return &UsageError{Msg: "please specify --file <path> or --directory <path>"}
	case flags.Concurrency < 0:
		return &UsageError{Msg: fmt.Sprintf("--concurrency must not be negative, got %d", flags.Concurrency)}
	}

	if _, err := catalog.ParseMismatchPolicy(flags.OnMismatch); err != nil {
		return &UsageError{Msg: err.Error()}
	}
	return provider.Validate(flags.Provider)
}

// NewProcessor validates flags, looks up the provider credential and builds
// the provider client.
func NewProcessor(ctx context.Context, flags *cli.Flags) (*Processor, error) {
	if err := Validate(flags); err != nil {
		return nil, err
	}

	apiKey := cli.GetAPIKey(flags.Provider)
	if apiKey == "" {
		return nil, fmt.Errorf("missing %s in environment", provider.KeyEnv(flags.Provider))
	}

	p, err := provider.New(ctx, provider.Config{
		Provider: flags.Provider,
		Model:    flags.Model,
		Rules:    flags.Rules,
		APIKey:   apiKey,
	})
	if err != nil {
		return nil, err
	}

	return NewProcessorWithProvider(flags, p), nil
}

// NewProcessorWithProvider creates a processor around an existing provider.
// With --fail-fast the provider is shared behind one circuit breaker, so a
// failure in one file also stops the files still in flight. Progress goes to
// stderr.
func NewProcessorWithProvider(flags *cli.Flags, p provider.Provider) *Processor {
	policy, _ := catalog.ParseMismatchPolicy(flags.OnMismatch)
	if flags.FailFast {
		p = provider.WithBreaker(p)
	}

	proc := &Processor{
		flags:    flags,
		provider: p,
		logger:   log.Logger,
		out:      os.Stderr,
	}

	proc.translator = translation.NewTranslator(p)
	proc.translator.Policy = policy
	proc.translator.Logger = proc.logger
	proc.translator.Sink = cli.NewProgress(proc.out).Handle

	if (flags.RollbackOnFailure || flags.BackupDir != "") && !flags.DryRun {
		proc.journal = archive.NewJournal()
		proc.translator.Archive = proc.journal
	}

	return proc
}

// SetOutput redirects progress output.
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
	p.translator.Sink = cli.NewProgress(w).Handle
}

// Run translates the selected file or directory. Results are returned for
// every file that finished, also when the run failed.
func (p *Processor) Run(ctx context.Context) ([]translation.Result, error) {
	if err := Validate(p.flags); err != nil {
		return nil, err
	}

	started := time.Now()

	var (
		results []translation.Result
		err     error
		root    string
	)
	if p.flags.File != "" {
		results, err = p.ProcessFile(ctx)
		root = filepath.Dir(p.flags.File)
	} else {
		results, err = p.ProcessDirectory(ctx)
		root = p.flags.Directory
	}
	if abs, aerr := filepath.Abs(root); aerr == nil {
		root = abs
	}

	rolledBack := false
	if err != nil && p.flags.RollbackOnFailure && p.journal != nil && p.journal.Len() > 0 {
		p.logger.Warn().Int("files", p.journal.Len()).Msg("Run failed, restoring files already written")
		if rerr := p.journal.Restore(); rerr != nil {
			p.logger.Error().Err(rerr).Msg("Rollback incomplete")
		} else {
			rolledBack = true
		}
	}

	if err == nil && p.flags.BackupDir != "" && p.journal != nil {
		backupPath, berr := p.journal.Backup(p.flags.BackupDir, root)
		if berr != nil {
			return results, berr
		}
		if backupPath != "" {
			p.logger.Info().Str("dir", backupPath).Msg("Original catalogs archived")
		}
	}

	if p.flags.Report != "" {
		report := cli.NewReport(p.provider.Name(), p.flags.Model, p.flags.DryRun, started, results, err)
		report.RolledBack = rolledBack
		if rerr := cli.WriteReport(p.flags.Report, report); rerr != nil {
			p.logger.Error().Err(rerr).Str("file", p.flags.Report).Msg("Failed to write report")
		}
	}

	return results, err
}

// ProcessFile translates the single catalog named by --file.
func (p *Processor) ProcessFile(ctx context.Context) ([]translation.Result, error) {
	result, err := p.translator.TranslateFile(ctx, translation.Options{
		FilePath: p.flags.File,
		Language: p.flags.Language,
		Model:    p.flags.Model,
		Rules:    p.flags.Rules,
		DryRun:   p.flags.DryRun,
	})
	if err != nil {
		return nil, err
	}
	return []translation.Result{result}, nil
}

// ProcessDirectory translates every matching catalog below --directory.
func (p *Processor) ProcessDirectory(ctx context.Context) ([]translation.Result, error) {
	driver := batch.NewDriver(p.translator)
	driver.Logger = p.logger

	results, err := driver.TranslateDirectory(ctx, batch.Options{
		Dir:             p.flags.Directory,
		Include:         p.flags.Include,
		DefaultLanguage: p.flags.Language,
		Model:           p.flags.Model,
		Rules:           p.flags.Rules,
		DryRun:          p.flags.DryRun,
		Concurrency:     p.flags.Concurrency,
	})
	if err != nil {
		return results, err
	}

	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
		}
	}
	if skipped > 0 {
		p.logger.Info().Int("skipped", skipped).Msg("Some catalogs had no language and were left untouched")
	}
	return results, nil
}
