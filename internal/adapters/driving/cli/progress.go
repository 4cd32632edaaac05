package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure Progress implements the interface.
var _ driven.ProgressReporter = (*Progress)(nil)

const (
	progressLabel = "Processing files"
	progressWidth = 40
)

// Progress renders batch progress. On a terminal it redraws a single
// bar line; otherwise it prints one line per document.
type Progress struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	bar         progress.Model
	styles      *Styles
	total       int
	done        int
}

// NewProgress creates a reporter writing to out.
func NewProgress(out io.Writer) *Progress {
	styles := DefaultStyles()
	theme := styles.Theme()
	return &Progress{
		out:         out,
		interactive: isTerminal(out),
		bar: progress.New(
			progress.WithGradient(string(theme.Primary), string(theme.Secondary)),
			progress.WithWidth(progressWidth),
		),
		styles: styles,
	}
}

// Start announces the number of documents.
func (p *Progress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	if p.interactive {
		p.draw()
	}
}

// Advance marks one document as handled.
func (p *Progress) Advance(doc domain.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.interactive {
		p.draw()
		return
	}
	fmt.Fprintf(p.out, "%s: %d/%d %s\n", progressLabel, p.done, p.total, doc.Name())
}

// Finish ends the bar line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive {
		fmt.Fprintln(p.out)
	}
}

func (p *Progress) draw() {
	fmt.Fprintf(p.out, "\r%s %s %s",
		p.styles.Title.Render(progressLabel),
		p.bar.ViewAs(p.percent()),
		p.styles.Muted.Render(fmt.Sprintf("%d/%d", p.done, p.total)),
	)
}

func (p *Progress) percent() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
