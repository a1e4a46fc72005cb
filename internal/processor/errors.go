package processor

// UsageError reports an invalid combination of command-line options. It is
// returned before any file is read.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }
