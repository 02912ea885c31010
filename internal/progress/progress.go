// Package progress draws progress indicators on stderr so stdout stays
// clean for piping. Nothing is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// minItems is the smallest total worth a progress counter.
const minItems = 5

const clearLine = "\r\033[K"

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Progress counts completed items out of a known total.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	active  bool
}

// New returns a counter writing to stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total)
}

// NewWriter returns a counter writing to w. Drawing is disabled when w
// is not a terminal or total is below minItems.
func NewWriter(w io.Writer, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, active: total >= minItems && isTerminal(w)}
}

// Increment records one completed item and redraws the counter.
func (p *Progress) Increment() {
	p.current++
	if !p.active {
		return
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
}

// Current returns the number of completed items.
func (p *Progress) Current() int { return p.current }

// Done clears the counter line.
func (p *Progress) Done() {
	if p.active {
		fmt.Fprint(p.w, clearLine)
	}
}

// Spinner shows that work of unknown length is running.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	active  bool
	running bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner returns a spinner writing to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{w: os.Stderr, label: label, active: isTerminal(os.Stderr)}
}

// Start draws the first frame.
func (s *Spinner) Start() {
	if !s.active {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick advances the animation by one frame.
func (s *Spinner) Tick() {
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	fmt.Fprint(s.w, clearLine)
}
