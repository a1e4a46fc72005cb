package catalog

import (
	"strings"
)

// Entry represents a single message of a PO catalog.
type Entry struct {
	// TranslatorComments are lines starting with "# ".
	TranslatorComments []string
	// ExtractedComments are lines starting with "#.".
	ExtractedComments []string
	// References are source locations, lines starting with "#:".
	References []string
	// Flags are format flags such as "fuzzy" or "c-format".
	Flags []string
	// Previous holds the raw "#|" lines of fuzzy entries.
	Previous []string

	// Context is the msgctxt, empty when the message has none.
	Context string
	// MsgID is the source text and the lookup key of the entry.
	MsgID string
	// MsgIDPlural is the plural source text.
	MsgIDPlural string
	// MsgStr is the translation slot. Index 0 holds the singular
	// translation, further indices hold plural forms.
	MsgStr []string

	// Obsolete marks entries prefixed with "#~".
	Obsolete bool

	raw      []string
	rendered string
}

// Translation returns the first string of the translation slot.
func (e *Entry) Translation() string {
	if len(e.MsgStr) == 0 {
		return ""
	}
	return e.MsgStr[0]
}

// SetTranslation overwrites the first string of the translation slot.
func (e *Entry) SetTranslation(s string) {
	if len(e.MsgStr) == 0 {
		e.MsgStr = []string{s}
		return
	}
	e.MsgStr[0] = s
}

// IsTranslated reports whether the first translation string is non-empty.
func (e *Entry) IsTranslated() bool {
	return e.Translation() != ""
}

// IsFuzzy returns true if the entry is marked fuzzy.
func (e *Entry) IsFuzzy() bool {
	return e.HasFlag("fuzzy")
}

// HasFlag checks if a specific flag is present.
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// HeaderField is one "Name: value" line of the catalog metadata.
type HeaderField struct {
	Name  string
	Value string
}

// group holds the messages of one context in insertion order.
type group struct {
	keys    []string
	entries map[string]*Entry
}

// Catalog is a parsed PO file.
type Catalog struct {
	// Header is the metadata entry (msgid ""). Nil when the file has none.
	Header *Entry
	// Entries are the messages in file order, obsolete ones included.
	Entries []*Entry

	contexts []string
	index    map[string]*group
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]*group)}
}

// Headers returns the metadata fields in file order.
func (c *Catalog) Headers() []HeaderField {
	if c.Header == nil {
		return nil
	}
	var fields []HeaderField
	for _, line := range strings.Split(c.Header.Translation(), "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		fields = append(fields, HeaderField{
			Name:  strings.TrimSpace(line[:idx]),
			Value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return fields
}

// HeaderValue returns a metadata field by name, compared case-insensitively.
func (c *Catalog) HeaderValue(name string) (string, bool) {
	for _, f := range c.Headers() {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Language returns the declared target language of the catalog. It is
// false when the header has no Language field or the field is blank.
func (c *Catalog) Language() (string, bool) {
	v, ok := c.HeaderValue("language")
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Contexts returns the message contexts in order of first appearance.
// The empty string stands for messages without msgctxt.
func (c *Catalog) Contexts() []string {
	out := make([]string, len(c.contexts))
	copy(out, c.contexts)
	return out
}

// Keys returns the source texts of a context in insertion order.
func (c *Catalog) Keys(ctx string) []string {
	g, ok := c.index[ctx]
	if !ok {
		return nil
	}
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Lookup finds the live entry stored under ctx and key.
func (c *Catalog) Lookup(ctx, key string) *Entry {
	g, ok := c.index[ctx]
	if !ok {
		return nil
	}
	return g.entries[key]
}

// add appends an entry and indexes it. It reports false when the context
// already holds the same source text.
func (c *Catalog) add(e *Entry) bool {
	if e.MsgID == "" && e.Context == "" && !e.Obsolete && c.Header == nil {
		c.Header = e
	} else {
		c.Entries = append(c.Entries, e)
	}
	if e.Obsolete {
		return true
	}

	g, ok := c.index[e.Context]
	if !ok {
		g = &group{entries: make(map[string]*Entry)}
		c.index[e.Context] = g
		c.contexts = append(c.contexts, e.Context)
	}
	if _, dup := g.entries[e.MsgID]; dup {
		return false
	}
	g.keys = append(g.keys, e.MsgID)
	g.entries[e.MsgID] = e
	return true
}
