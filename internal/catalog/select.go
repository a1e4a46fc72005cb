package catalog

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// MismatchPolicy decides what happens when an indexed entry no longer
// carries the source text it is stored under.
type MismatchPolicy int

const (
	// MismatchSkip drops the entry silently.
	MismatchSkip MismatchPolicy = iota
	// MismatchWarn drops the entry and logs a warning.
	MismatchWarn
	// MismatchFail aborts the selection with a *MismatchError.
	MismatchFail
)

// ParseMismatchPolicy maps "skip", "warn" and "fail" to a policy.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return MismatchSkip, nil
	case "warn":
		return MismatchWarn, nil
	case "fail":
		return MismatchFail, nil
	default:
		return MismatchSkip, fmt.Errorf("unknown mismatch policy %q (want skip, warn or fail)", s)
	}
}

func (p MismatchPolicy) String() string {
	switch p {
	case MismatchWarn:
		return "warn"
	case MismatchFail:
		return "fail"
	default:
		return "skip"
	}
}

// Job is one entry waiting for a translation.
type Job struct {
	Context string
	MsgID   string
	Entry   *Entry
}

// Selector lists untranslated entries of a catalog.
type Selector struct {
	Policy MismatchPolicy
	Logger zerolog.Logger
}

// Untranslated walks the catalog context by context, key by key, and
// returns the entries whose first translation string is empty. The
// metadata record and entries stored under a key other than their own
// msgid are never returned.
func (s Selector) Untranslated(c *Catalog) ([]Job, error) {
	var jobs []Job
	for _, ctx := range c.contexts {
		g := c.index[ctx]
		for _, key := range g.keys {
			if key == "" {
				continue
			}
			e := g.entries[key]
			if e == nil {
				continue
			}
			if e.MsgID != key {
				switch s.Policy {
				case MismatchFail:
					return nil, &MismatchError{Context: ctx, Key: key, MsgID: e.MsgID}
				case MismatchWarn:
					s.Logger.Warn().
						Str("context", ctx).
						Str("key", key).
						Str("msgid", e.MsgID).
						Msg("Skipping entry stored under a different msgid")
				}
				continue
			}
			if e.IsTranslated() {
				continue
			}
			jobs = append(jobs, Job{Context: ctx, MsgID: key, Entry: e})
		}
	}
	return jobs, nil
}

// Untranslated is Selector.Untranslated with the default skip policy.
func Untranslated(c *Catalog) []Job {
	jobs, _ := Selector{Logger: zerolog.Nop()}.Untranslated(c)
	return jobs
}
