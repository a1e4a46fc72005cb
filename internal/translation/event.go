package translation

// EventKind identifies a progress event.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventProgress EventKind = "progress"
	EventDone     EventKind = "done"
)

// Event is emitted while a file is translated. Per file there is exactly one
// start, one progress per translated entry and exactly one done.
type Event struct {
	Kind      EventKind
	FilePath  string
	Processed int
	Total     int
	DryRun    bool
}

// Sink receives progress events. It may be called from several goroutines
// when files are translated concurrently.
type Sink func(Event)

// Result summarizes the outcome for one file.
type Result struct {
	FilePath  string `yaml:"file"`
	Language  string `yaml:"language,omitempty"`
	Processed int    `yaml:"processed"`
	Total     int    `yaml:"total"`
	DryRun    bool   `yaml:"dry_run,omitempty"`
	Skipped   bool   `yaml:"skipped,omitempty"`
}
