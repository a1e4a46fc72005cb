package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"codeberg.org/snonux/poai/internal"
	"codeberg.org/snonux/poai/internal/translation"
)

// Progress renders translation events as one progress bar per file and a
// summary line when a file is done. It is safe for concurrent use.
type Progress struct {
	mu   sync.Mutex
	out  io.Writer
	bars map[string]*progressbar.ProgressBar
}

// NewProgress creates a progress display writing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out:  out,
		bars: make(map[string]*progressbar.ProgressBar),
	}
}

// Handle renders one event. Its signature matches translation.Sink.
func (p *Progress) Handle(e translation.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case translation.EventStart:
		if e.Total == 0 {
			return
		}
		p.bars[e.FilePath] = progressbar.NewOptions(e.Total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", internal.RelPath(e.FilePath))),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

	case translation.EventProgress:
		if bar, ok := p.bars[e.FilePath]; ok {
			bar.Set(e.Processed)
		}

	case translation.EventDone:
		if bar, ok := p.bars[e.FilePath]; ok {
			bar.Finish()
			delete(p.bars, e.FilePath)
			fmt.Fprintln(p.out)
		}
		fmt.Fprintln(p.out, SummaryLine(e))
	}
}

// SummaryLine formats the line printed when a file is done: "✓" after a
// write, "ℹ" after a dry run.
func SummaryLine(e translation.Event) string {
	mark := "✓"
	if e.DryRun {
		mark = "ℹ"
	}
	return fmt.Sprintf("%s %s – %d/%d", mark, internal.RelPath(e.FilePath), e.Processed, e.Total)
}
