package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write serializes the catalog. Entries that were not modified since
// parsing are written back with their original lines.
func (c *Catalog) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	first := true
	emit := func(e *Entry) {
		if !first {
			fmt.Fprintln(bw)
		}
		first = false
		bw.WriteString(entryText(e))
	}

	if c.Header != nil {
		emit(c.Header)
	}
	for _, e := range c.Entries {
		emit(e)
	}

	return bw.Flush()
}

// Bytes returns the serialized catalog.
func (c *Catalog) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the catalog to disk with the given permissions.
func (c *Catalog) WriteFile(path string, perm os.FileMode) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func entryText(e *Entry) string {
	text := render(e)
	if e.raw != nil && text == e.rendered {
		return strings.Join(e.raw, "\n") + "\n"
	}
	return text
}

// render produces the canonical form of an entry.
func render(e *Entry) string {
	var b strings.Builder

	prefix := ""
	if e.Obsolete {
		prefix = "#~ "
	}

	for _, c := range e.TranslatorComments {
		if c == "" {
			b.WriteString("#\n")
		} else {
			fmt.Fprintf(&b, "# %s\n", c)
		}
	}
	for _, c := range e.ExtractedComments {
		fmt.Fprintf(&b, "#. %s\n", c)
	}
	for _, ref := range e.References {
		fmt.Fprintf(&b, "#: %s\n", ref)
	}
	if len(e.Flags) > 0 {
		fmt.Fprintf(&b, "#, %s\n", strings.Join(e.Flags, ", "))
	}
	for _, prev := range e.Previous {
		fmt.Fprintf(&b, "%s\n", prev)
	}

	if e.Context != "" {
		writeQuotedField(&b, prefix, "msgctxt", e.Context)
	}
	writeQuotedField(&b, prefix, "msgid", e.MsgID)
	if e.MsgIDPlural != "" {
		writeQuotedField(&b, prefix, "msgid_plural", e.MsgIDPlural)
		if len(e.MsgStr) == 0 {
			writeQuotedField(&b, prefix, "msgstr[0]", "")
		}
		for i, s := range e.MsgStr {
			writeQuotedField(&b, prefix, fmt.Sprintf("msgstr[%d]", i), s)
		}
	} else {
		writeQuotedField(&b, prefix, "msgstr", e.Translation())
	}

	return b.String()
}

// writeQuotedField writes a PO field with proper multiline quoting.
func writeQuotedField(b *strings.Builder, prefix, field, value string) {
	if !strings.Contains(value, "\n") {
		fmt.Fprintf(b, "%s%s %s\n", prefix, field, quote(value))
		return
	}

	// Multiline: use empty string on first line
	fmt.Fprintf(b, "%s%s \"\"\n", prefix, field)
	parts := strings.Split(value, "\n")
	for i, part := range parts {
		if i < len(parts)-1 {
			fmt.Fprintf(b, "%s%s\n", prefix, quote(part+"\n"))
		} else if part != "" {
			fmt.Fprintf(b, "%s%s\n", prefix, quote(part))
		}
	}
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\a", `\a`,
	"\b", `\b`,
	"\f", `\f`,
	"\v", `\v`,
)

// quote produces a PO-style quoted string.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
