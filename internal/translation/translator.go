package translation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/snonux/poai/internal"
	"codeberg.org/snonux/poai/internal/archive"
	"codeberg.org/snonux/poai/internal/catalog"
	"codeberg.org/snonux/poai/internal/provider"
)

// Options describes one file translation.
type Options struct {
	FilePath string
	// Language overrides the catalog's Language header when non-empty.
	Language string
	Model    string
	Rules    string
	DryRun   bool
}

// Document is a catalog loaded from disk together with what is needed to
// write it back in place.
type Document struct {
	Path    string
	Raw     []byte
	Mode    os.FileMode
	Catalog *catalog.Catalog
}

// Load resolves path to an absolute path, reads and parses it.
func Load(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}

	c, err := catalog.ParseNamed(absPath, raw)
	if err != nil {
		return nil, err
	}

	return &Document{Path: absPath, Raw: raw, Mode: info.Mode().Perm(), Catalog: c}, nil
}

// Translator fills untranslated entries of catalogs through a provider.
type Translator struct {
	Provider provider.Provider
	Policy   catalog.MismatchPolicy
	// Sink receives progress events; nil discards them.
	Sink Sink
	// Archive, when set, records the original bytes of every file before it
	// is overwritten.
	Archive *archive.Journal
	Logger  zerolog.Logger
}

// NewTranslator creates a translator that logs through the global logger.
func NewTranslator(p provider.Provider) *Translator {
	return &Translator{
		Provider: p,
		Logger:   log.Logger,
	}
}

// TranslateFile loads the catalog at opts.FilePath, translates every
// untranslated entry one at a time and writes the file back in place.
func (t *Translator) TranslateFile(ctx context.Context, opts Options) (Result, error) {
	doc, err := Load(opts.FilePath)
	if err != nil {
		return Result{FilePath: opts.FilePath}, err
	}
	return t.TranslateDocument(ctx, doc, opts)
}

// TranslateDocument translates an already loaded catalog. opts.FilePath is
// ignored in favour of doc.Path.
func (t *Translator) TranslateDocument(ctx context.Context, doc *Document, opts Options) (Result, error) {
	result := Result{FilePath: doc.Path, DryRun: opts.DryRun}

	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language, _ = doc.Catalog.Language()
	}
	if language == "" {
		return result, &ConfigurationError{FilePath: doc.Path}
	}
	result.Language = language

	selector := catalog.Selector{Policy: t.Policy, Logger: t.Logger}
	jobs, err := selector.Untranslated(doc.Catalog)
	if err != nil {
		return result, fmt.Errorf("%s: %w", doc.Path, err)
	}
	result.Total = len(jobs)

	t.emit(Event{Kind: EventStart, FilePath: doc.Path, Total: result.Total})
	t.Logger.Debug().Str("file", doc.Path).Str("language", language).Int("total", result.Total).Msg("Translating catalog")

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		translated, err := t.Provider.Translate(ctx, provider.Request{
			Text:           job.MsgID,
			TargetLanguage: language,
			Model:          opts.Model,
			Rules:          opts.Rules,
		})
		if err != nil {
			return result, fmt.Errorf("failed to translate %q in %s: %w", internal.Truncate(job.MsgID, 60), doc.Path, err)
		}
		t.Logger.Debug().Str("msgid", internal.Truncate(job.MsgID, 60)).Msg("Translated entry")

		// Quotes stay raw here; the writer escapes them once.
		job.Entry.SetTranslation(translated)
		result.Processed++
		t.emit(Event{Kind: EventProgress, FilePath: doc.Path, Processed: result.Processed, Total: result.Total})
	}

	if opts.DryRun {
		t.emit(Event{Kind: EventDone, FilePath: doc.Path, Processed: result.Processed, Total: result.Total, DryRun: true})
		t.Logger.Info().Msgf("[dry-run] %s: would write %d translations", doc.Path, result.Processed)
		return result, nil
	}

	// A catalog with nothing to translate serializes to its own bytes, so it
	// is left untouched on disk.
	if result.Processed > 0 {
		if err := t.write(doc, jobs); err != nil {
			return result, err
		}
	}

	t.emit(Event{Kind: EventDone, FilePath: doc.Path, Processed: result.Processed, Total: result.Total})
	return result, nil
}

// write serializes the catalog, checks the output loads and replaces the file.
func (t *Translator) write(doc *Document, jobs []catalog.Job) error {
	out, err := doc.Catalog.Bytes()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", doc.Path, err)
	}

	if err := catalog.Verify(out, jobs); err != nil {
		return fmt.Errorf("refusing to write %s: %w", doc.Path, err)
	}

	if t.Archive != nil {
		t.Archive.Record(doc.Path, doc.Raw, doc.Mode)
	}

	if err := os.WriteFile(doc.Path, out, doc.Mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", doc.Path, err)
	}

	t.Logger.Debug().Str("file", doc.Path).Int("bytes", len(out)).Msg("Wrote catalog")
	return nil
}

func (t *Translator) emit(e Event) {
	if t.Sink != nil {
		t.Sink(e)
	}
}
