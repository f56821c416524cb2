// Package tui is the full-screen review monitor. It shows the current
// state, the wait progress and the recent steps, and can act as the event
// source by forwarding keys typed into the terminal.
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/progress"
	"github.com/dycw/skritter/internal/review"
)

// Options configures a Monitor.
type Options struct {
	Bindings review.Bindings
	// Source, when set, receives the keys pressed in the terminal.
	Source *events.Chan
	// Cancel is called on ctrl+c.
	Cancel context.CancelFunc
	// ProgramOptions are passed to tea.NewProgram.
	ProgramOptions []tea.ProgramOption
}

// Monitor runs the Bubble Tea program alongside the review loop.
type Monitor struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
	err     error
}

var (
	_ progress.Reporter = (*Monitor)(nil)
	_ review.Observer   = (*Monitor)(nil)
)

// New creates a Monitor. Call Start to show it.
func New(opts Options) *Monitor {
	m := newModel(opts.Bindings, opts.Source, opts.Cancel)
	return &Monitor{
		program: tea.NewProgram(m, opts.ProgramOptions...),
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background.
func (m *Monitor) Start() {
	go func() {
		defer close(m.done)
		if _, err := m.program.Run(); err != nil {
			m.err = fmt.Errorf("run monitor: %w", err)
		}
	}()
}

func (m *Monitor) Report(label string, done, total int) {
	m.program.Send(progressMsg{label: label, done: done, total: total})
}

func (m *Monitor) OnStep(s review.Step) {
	m.program.Send(stepMsg{step: s, at: time.Now()})
}

// Stop quits the program and restores the terminal.
func (m *Monitor) Stop() error {
	m.once.Do(func() { m.program.Send(quitMsg{}) })
	<-m.done
	return m.err
}
