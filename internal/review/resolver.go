package review

import (
	"fmt"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/keys"
)

// Bindings maps operator signals to keys.
type Bindings struct {
	TogglePause  keys.Key
	FailCurrent  keys.Key
	FailPrevious keys.Key
	ShutDown     keys.Key
}

// DefaultBindings: esc pauses, c and l fail the current and previous card,
// q quits.
func DefaultBindings() Bindings {
	return Bindings{
		TogglePause:  keys.Esc,
		FailCurrent:  "c",
		FailPrevious: "l",
		ShutDown:     "q",
	}
}

// Validate checks every binding is set and no key is bound twice.
func (b Bindings) Validate() error {
	seen := make(map[keys.Key]string, 4)
	for _, e := range []struct {
		name string
		key  keys.Key
	}{
		{"toggle_pause", b.TogglePause},
		{"fail_current", b.FailCurrent},
		{"fail_previous", b.FailPrevious},
		{"shut_down", b.ShutDown},
	} {
		if e.key == "" {
			return fmt.Errorf("binding %s is empty", e.name)
		}
		if prev, dup := seen[e.key]; dup {
			return fmt.Errorf("key %q bound to both %s and %s", e.key, prev, e.name)
		}
		seen[e.key] = e.name
	}
	return nil
}

// Table is one state's resolver table.
type Table struct {
	Signals map[keys.Key]Action
	Timeout Action
}

// Resolver classifies events per state. Tables are built once and never
// change afterwards.
type Resolver struct {
	tables map[State]Table
}

// NewResolver builds the per-state tables from b.
func NewResolver(b Bindings) (*Resolver, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	pauseOrQuit := map[keys.Key]Action{
		b.TogglePause: ActionTogglePause,
		b.ShutDown:    ActionShutDown,
	}
	active := map[keys.Key]Action{
		b.TogglePause:  ActionTogglePause,
		b.FailCurrent:  ActionFailCurrent,
		b.FailPrevious: ActionFailPrevious,
		b.ShutDown:     ActionShutDown,
	}

	return &Resolver{tables: map[State]Table{
		StateInit:         {Signals: pauseOrQuit, Timeout: ActionAdvance},
		StateTest:         {Signals: active, Timeout: ActionAdvance},
		StateTestPaused:   {Signals: pauseOrQuit, Timeout: ActionContinue},
		StateReview:       {Signals: active, Timeout: ActionAdvance},
		StateReviewPaused: {Signals: pauseOrQuit, Timeout: ActionContinue},
		StateForgotten:    {Signals: pauseOrQuit, Timeout: ActionFinishForgotten},
	}}, nil
}

// Table returns the table for s. The terminal state has none.
func (r *Resolver) Table(s State) (Table, bool) {
	t, ok := r.tables[s]
	return t, ok
}

// Resolve maps an event observed in s to an action. A nil event is the
// timeout. ok is false for events the state does not recognize, including
// releases and autorepeat.
func (r *Resolver) Resolve(s State, ev *events.Event) (Action, bool) {
	t, ok := r.tables[s]
	if !ok {
		return "", false
	}
	if ev == nil {
		return t.Timeout, true
	}
	if ev.Kind != events.Press {
		return "", false
	}
	a, ok := t.Signals[ev.Key]
	return a, ok
}
