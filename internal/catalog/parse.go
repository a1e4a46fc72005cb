package catalog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parser holds the state of one Parse call.
type parser struct {
	cat *Catalog

	current   *Entry
	startLine int
	lastField string
	hasMsgID  bool
	hasMsgStr bool
}

// Parse reads a PO catalog from raw bytes. Malformed input yields a
// *ParseError carrying the offending line.
func Parse(raw []byte) (*Catalog, error) {
	return ParseNamed("", raw)
}

// ParseNamed is Parse with the file name recorded in returned errors.
func ParseNamed(name string, raw []byte) (*Catalog, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	p := &parser{cat: New()}
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if err := p.line(lineNum, line); err != nil {
			return nil, &ParseError{Path: name, Line: lineNum, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if err := p.flush(); err != nil {
		return nil, &ParseError{Path: name, Line: p.startLine, Err: err}
	}
	return p.cat, nil
}

// ParseFile reads and parses a catalog from disk.
func ParseFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseNamed(path, raw)
}

func (p *parser) begin(lineNum int) {
	if p.current != nil {
		return
	}
	p.current = &Entry{}
	p.startLine = lineNum
}

func (p *parser) flush() error {
	e := p.current
	if e == nil {
		return nil
	}
	defer func() {
		p.current = nil
		p.lastField = ""
		p.hasMsgID = false
		p.hasMsgStr = false
	}()

	if !p.hasMsgID {
		return errors.New("comment block without a message")
	}
	if !p.hasMsgStr {
		return fmt.Errorf("msgid %q has no msgstr", e.MsgID)
	}
	e.rendered = render(e)
	if !p.cat.add(e) {
		return fmt.Errorf("duplicate message definition for msgid %q", e.MsgID)
	}
	return nil
}

func (p *parser) line(lineNum int, line string) error {
	if strings.TrimSpace(line) == "" {
		return p.flush()
	}

	obsolete := false
	body := line
	if strings.HasPrefix(body, "#~") {
		obsolete = true
		body = strings.TrimPrefix(body[2:], " ")
		if strings.HasPrefix(body, "|") {
			return p.comment(lineNum, line, "#|"+body[1:])
		}
	} else if strings.HasPrefix(body, "#") {
		return p.comment(lineNum, line, body)
	}

	body = strings.TrimSpace(body)
	keyword, rest := splitKeyword(body)

	// A new keyword after a complete msgstr starts the next entry even
	// without a separating blank line.
	if p.hasMsgStr && (keyword == "msgctxt" || keyword == "msgid") {
		if err := p.flush(); err != nil {
			return err
		}
	}
	p.begin(lineNum)
	if obsolete {
		p.current.Obsolete = true
	}
	p.current.raw = append(p.current.raw, line)

	if keyword == "" {
		if p.lastField == "" {
			return errors.New("string continuation without a preceding keyword")
		}
		val, err := unquote(body)
		if err != nil {
			return err
		}
		return p.appendTo(p.lastField, val)
	}

	val, err := unquote(rest)
	if err != nil {
		return err
	}

	switch {
	case keyword == "msgctxt":
		if p.hasMsgID {
			return errors.New("msgctxt after msgid")
		}
		p.current.Context = val
	case keyword == "msgid":
		if p.hasMsgID {
			return errors.New("duplicate msgid keyword in one entry")
		}
		p.current.MsgID = val
		p.hasMsgID = true
	case keyword == "msgid_plural":
		if !p.hasMsgID {
			return errors.New("msgid_plural before msgid")
		}
		p.current.MsgIDPlural = val
	case keyword == "msgstr":
		if !p.hasMsgID {
			return errors.New("msgstr before msgid")
		}
		p.setMsgStr(0, val)
	case strings.HasPrefix(keyword, "msgstr["):
		if !p.hasMsgID {
			return errors.New("msgstr before msgid")
		}
		idx, err := pluralIndex(keyword)
		if err != nil {
			return err
		}
		p.setMsgStr(idx, val)
	default:
		return fmt.Errorf("unexpected keyword %q", keyword)
	}
	p.lastField = keyword
	return nil
}

func (p *parser) comment(lineNum int, raw, body string) error {
	// Comments after a finished message belong to the next entry.
	if p.hasMsgStr {
		if err := p.flush(); err != nil {
			return err
		}
	}
	p.begin(lineNum)
	e := p.current
	e.raw = append(e.raw, raw)
	p.lastField = ""

	switch {
	case strings.HasPrefix(body, "#:"):
		e.References = append(e.References, strings.TrimSpace(body[2:]))
	case strings.HasPrefix(body, "#,"):
		for _, flag := range strings.Split(body[2:], ",") {
			if flag = strings.TrimSpace(flag); flag != "" {
				e.Flags = append(e.Flags, flag)
			}
		}
	case strings.HasPrefix(body, "#."):
		e.ExtractedComments = append(e.ExtractedComments, strings.TrimSpace(body[2:]))
	case strings.HasPrefix(body, "#|"):
		e.Previous = append(e.Previous, raw)
	default:
		e.TranslatorComments = append(e.TranslatorComments, strings.TrimPrefix(body[1:], " "))
	}
	return nil
}

func (p *parser) setMsgStr(idx int, val string) {
	for len(p.current.MsgStr) <= idx {
		p.current.MsgStr = append(p.current.MsgStr, "")
	}
	p.current.MsgStr[idx] = val
	p.hasMsgStr = true
}

func (p *parser) appendTo(field, val string) error {
	e := p.current
	switch {
	case field == "msgctxt":
		e.Context += val
	case field == "msgid":
		e.MsgID += val
	case field == "msgid_plural":
		e.MsgIDPlural += val
	case field == "msgstr":
		e.MsgStr[0] += val
	case strings.HasPrefix(field, "msgstr["):
		idx, err := pluralIndex(field)
		if err != nil {
			return err
		}
		e.MsgStr[idx] += val
	}
	return nil
}

// splitKeyword separates a field keyword from its quoted value. Lines that
// start with a quote are continuations and have no keyword.
func splitKeyword(line string) (keyword, rest string) {
	if strings.HasPrefix(line, `"`) {
		return "", line
	}
	idx := strings.IndexAny(line, " \t\"")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

func pluralIndex(keyword string) (int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(keyword, "msgstr["), "]")
	if !strings.HasSuffix(keyword, "]") || inner == "" {
		return 0, fmt.Errorf("invalid msgstr index %q", keyword)
	}
	idx, err := strconv.Atoi(inner)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid msgstr index %q", keyword)
	}
	return idx, nil
}

// unquote removes PO-style quoting from a string and resolves C escapes.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected a quoted string, got %q", s)
	}
	s = s[1 : len(s)-1]

	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			return "", errors.New("unescaped quote inside string")
		}
		if c != '\\' {
			result.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", errors.New("string ends with a backslash")
		}
		i++
		switch s[i] {
		case 'n':
			result.WriteByte('\n')
		case 't':
			result.WriteByte('\t')
		case 'r':
			result.WriteByte('\r')
		case 'a':
			result.WriteByte('\a')
		case 'b':
			result.WriteByte('\b')
		case 'f':
			result.WriteByte('\f')
		case 'v':
			result.WriteByte('\v')
		case '\\':
			result.WriteByte('\\')
		case '"':
			result.WriteByte('"')
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", s[i])
		}
	}
	return result.String(), nil
}
