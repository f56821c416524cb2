// Package review drives the timed test/review cycle: it waits in each state,
// classifies operator keys, taps the target application's shortcuts and
// moves to the next state until shut down.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/inject"
	"github.com/dycw/skritter/internal/keys"
	"github.com/dycw/skritter/internal/progress"
)

// Config holds the engine's tunables.
type Config struct {
	Durations Durations
	Bindings  Bindings
	Taps      Taps
	Tick      time.Duration
}

// DefaultConfig returns the stock durations, bindings and taps.
func DefaultConfig() Config {
	return Config{
		Durations: DefaultDurations(),
		Bindings:  DefaultBindings(),
		Taps:      DefaultTaps(),
		Tick:      DefaultTick,
	}
}

// Validate checks every part of the config.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	return errors.Join(c.Durations.Validate(), c.Bindings.Validate(), c.Taps.Validate())
}

// Observer is notified after every applied step.
type Observer interface {
	OnStep(Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }

// Options are the machine's collaborators.
type Options struct {
	Source    events.Source
	Injector  inject.Injector
	Progress  progress.Reporter
	Logger    *slog.Logger
	Observers []Observer
}

// Machine owns the current state and pause memory. It is not safe for
// concurrent use; Run is the only loop.
type Machine struct {
	state     State
	resume    State
	durations Durations
	taps      Taps
	window    *Window
	injector  inject.Injector
	log       *slog.Logger
	observers []Observer
}

// New creates a machine in StateInit.
func New(cfg Config, opts Options) (*Machine, error) {
	if opts.Source == nil {
		return nil, errors.New("review: event source is required")
	}
	if opts.Injector == nil {
		return nil, errors.New("review: injector is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	resolver, err := NewResolver(cfg.Bindings)
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Machine{
		state:     StateInit,
		durations: cfg.Durations,
		taps:      cfg.Taps,
		window:    NewWindow(opts.Source, resolver, cfg.Tick, opts.Progress),
		injector:  opts.Injector,
		log:       log,
		observers: opts.Observers,
	}, nil
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Resume returns the pause memory; empty unless the state is paused.
func (m *Machine) Resume() State { return m.resume }

// Apply performs a on the current state: taps first, then the state change.
// On error the state is left untouched.
func (m *Machine) Apply(ctx context.Context, a Action) (Step, error) {
	return m.apply(ctx, a, "")
}

func (m *Machine) apply(ctx context.Context, a Action, key keys.Key) (Step, error) {
	if m.state.Terminal() {
		return Step{}, ErrTerminal
	}
	step, err := Transition(m.state, m.resume, a, m.taps)
	if err != nil {
		return Step{}, err
	}
	step.Key = key

	if msg := message(step); msg != "" {
		m.log.Info(msg)
	}
	m.log.Debug("step",
		"from", step.From,
		"action", step.Action,
		"to", step.To,
		"taps", step.Taps,
	)

	for _, k := range step.Taps {
		if err := m.injector.Tap(ctx, k); err != nil {
			if ctx.Err() != nil && a != ActionShutDown {
				m.log.Debug("tap interrupted", "key", k, "error", err)
				return m.apply(ctx, ActionShutDown, "")
			}
			return Step{}, fmt.Errorf("tap %s: %w", k, err)
		}
	}
	if err := checkPauseMemory(step.To, step.Resume); err != nil {
		return Step{}, err
	}

	m.state, m.resume = step.To, step.Resume
	for _, o := range m.observers {
		o.OnStep(step)
	}
	return step, nil
}

// Step waits in the current state and applies the resulting action.
func (m *Machine) Step(ctx context.Context) (Step, error) {
	if m.state.Terminal() {
		return Step{}, ErrTerminal
	}
	out, err := m.window.Wait(ctx, m.state, m.durations.For(m.state))
	if err != nil {
		return Step{}, err
	}
	if out.Interrupted {
		m.log.Debug("wait interrupted", "state", m.state)
	}
	return m.apply(ctx, out.Action, out.Key)
}

// Run steps until the machine shuts down. Cancelling ctx shuts it down
// cleanly; only I/O failures and table errors are returned.
func (m *Machine) Run(ctx context.Context) error {
	m.log.Info("Starting...", "state", m.state)
	for !m.state.Terminal() {
		if _, err := m.Step(ctx); err != nil {
			m.log.Error("review loop failed", "state", m.state, "error", err)
			return err
		}
	}
	return nil
}

func message(s Step) string {
	switch s.Action {
	case ActionTogglePause:
		switch s.From {
		case StateTestPaused:
			return "Unpausing test..."
		case StateReviewPaused:
			return "Unpausing review..."
		case StateInit, StateTest:
			return "Pausing test..."
		default:
			return "Pausing review..."
		}
	case ActionFailCurrent:
		return "Marking current as forgotten..."
	case ActionFailPrevious:
		return "Marking previous as forgotten..."
	case ActionShutDown:
		return "Shutting down..."
	}
	return ""
}
