package batch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/snonux/poai/internal/translation"
	"codeberg.org/snonux/poai/internal/worker"
)

// DefaultConcurrency is the number of files translated at once.
const DefaultConcurrency = 2

// Options describes one directory run.
type Options struct {
	Dir     string
	Include string
	// DefaultLanguage is used for catalogs without a Language header.
	DefaultLanguage string
	Model           string
	Rules           string
	DryRun          bool
	Concurrency     int
}

// Driver translates every catalog below a directory.
type Driver struct {
	Translator *translation.Translator
	Logger     zerolog.Logger
}

// NewDriver creates a driver that logs through the global logger.
func NewDriver(t *translation.Translator) *Driver {
	return &Driver{
		Translator: t,
		Logger:     log.Logger,
	}
}

// TranslateDirectory translates the matching catalogs below opts.Dir and
// returns one result per file in discovery order.
//
// The first failing file fails the batch: files not yet started are not
// started, files in flight finish. Files written before the failure stay on
// disk. On failure only the results of files that finished are returned.
func (d *Driver) TranslateDirectory(ctx context.Context, opts Options) ([]translation.Result, error) {
	files, err := Discover(opts.Dir, opts.Include)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		d.Logger.Info().Str("dir", opts.Dir).Str("include", opts.Include).Msg("No .po files found")
		return []translation.Result{}, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	d.Logger.Debug().Int("files", len(files)).Int("concurrency", concurrency).Msg("Translating directory")

	pool := worker.NewPool(concurrency, func(ctx context.Context, path string) (translation.Result, error) {
		return d.translateOne(ctx, path, opts)
	})

	results, err := pool.Run(ctx, files)
	if err != nil {
		finished := make([]translation.Result, 0, len(results))
		for _, r := range results {
			if r.FilePath != "" {
				finished = append(finished, r)
			}
		}
		return finished, err
	}
	return results, nil
}

// translateOne parses the catalog once to read its Language header and hands
// the same document to the translator.
func (d *Driver) translateOne(ctx context.Context, path string, opts Options) (translation.Result, error) {
	doc, err := translation.Load(path)
	if err != nil {
		return translation.Result{}, err
	}

	language, ok := doc.Catalog.Language()
	if !ok {
		language = opts.DefaultLanguage
	}
	if language == "" {
		d.Logger.Warn().Str("file", path).Msg("Skipping catalog without Language header; pass --language to translate it")
		return translation.Result{FilePath: doc.Path, Skipped: true}, nil
	}

	return d.Translator.TranslateDocument(ctx, doc, translation.Options{
		FilePath: doc.Path,
		Language: language,
		Model:    opts.Model,
		Rules:    opts.Rules,
		DryRun:   opts.DryRun,
	})
}
