// Package progress reports how far the current wait has run.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dycw/skritter/internal/ui/components"
)

// Reporter receives one report per elapsed tick. Reports are advisory and
// must not block.
type Reporter interface {
	Report(label string, done, total int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(label string, done, total int)

func (f ReporterFunc) Report(label string, done, total int) { f(label, done, total) }

type nop struct{}

func (nop) Report(string, int, int) {}

// Nop discards reports.
var Nop Reporter = nop{}

type multi []Reporter

func (m multi) Report(label string, done, total int) {
	for _, r := range m {
		r.Report(label, done, total)
	}
}

// Multi fans reports out to every non-nil reporter.
func Multi(rs ...Reporter) Reporter {
	var out multi
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	switch len(out) {
	case 0:
		return Nop
	case 1:
		return out[0]
	}
	return out
}

// Bar redraws a single line per wait: "{label} {bar} {pct}%". A new wait
// (different label or a restarted count) starts on a fresh line.
type Bar struct {
	mu         sync.Mutex
	w          io.Writer
	width      int
	labelWidth int
	lastLabel  string
	lastDone   int
	open       bool
}

// NewBar writes bars of the given total width to w, padding labels to
// labelWidth so consecutive bars line up.
func NewBar(w io.Writer, width, labelWidth int) *Bar {
	if width <= 0 {
		width = 60
	}
	return &Bar{w: w, width: width, labelWidth: labelWidth}
}

func (b *Bar) Report(label string, done, total int) {
	if total <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open && (label != b.lastLabel || done <= b.lastDone) {
		fmt.Fprintln(b.w)
	}

	padded := label
	if pad := b.labelWidth - len(label); pad > 0 {
		padded += strings.Repeat(" ", pad)
	}
	bar := components.NewProgressBar(padded, float64(done)/float64(total), true, b.width)
	fmt.Fprint(b.w, "\r"+bar.View())

	b.lastLabel, b.lastDone, b.open = label, done, true
	if done >= total {
		fmt.Fprintln(b.w)
		b.open = false
	}
}

// Finish terminates an interrupted bar line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		fmt.Fprintln(b.w)
		b.open = false
	}
}
