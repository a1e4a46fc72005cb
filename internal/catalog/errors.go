package catalog

import "fmt"

// ParseError reports a catalog that is not well-formed PO syntax.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	return fmt.Sprintf("error parsing PO data in %s: %v. This can be caused by an unescaped quote in a source or translation string (msgid or msgstr value)", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MismatchError reports an entry indexed under a key that differs from
// its msgid.
type MismatchError struct {
	Context string
	Key     string
	MsgID   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("malformed catalog: entry stored under %q (context %q) has msgid %q", e.Key, e.Context, e.MsgID)
}
