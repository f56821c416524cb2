package review

import (
	"context"
	"fmt"
	"time"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/keys"
	"github.com/dycw/skritter/internal/progress"
)

// Outcome is the result of one wait.
type Outcome struct {
	Action Action
	// Key is the signal that ended the wait early; empty on timeout.
	Key keys.Key
	// TimedOut is set when the full duration elapsed.
	TimedOut bool
	// Interrupted is set when ctx ended the wait.
	Interrupted bool
	Elapsed     time.Duration
	// Ticks is the number of completed ticks.
	Ticks int
}

// Window is the tick-subdivided wait. It polls the source until a key
// classifies in the current state's table or the duration runs out.
type Window struct {
	source   events.Source
	resolver *Resolver
	tick     time.Duration
	progress progress.Reporter
	now      func() time.Time
}

// NewWindow creates a Window. A non-positive tick uses DefaultTick and a nil
// reporter discards progress.
func NewWindow(source events.Source, resolver *Resolver, tick time.Duration, reporter progress.Reporter) *Window {
	if tick <= 0 {
		tick = DefaultTick
	}
	if reporter == nil {
		reporter = progress.Nop
	}
	return &Window{
		source:   source,
		resolver: resolver,
		tick:     tick,
		progress: reporter,
		now:      time.Now,
	}
}

// Ticks returns how many ticks a wait of d takes. A trailing partial tick
// counts as one.
func Ticks(d, tick time.Duration) int {
	if d <= 0 || tick <= 0 {
		return 0
	}
	n := int(d / tick)
	if d%tick != 0 {
		n++
	}
	return n
}

// Wait blocks in state s for at most d. Deadlines are measured from the
// start of the wait so ticks never drift or overlap.
func (w *Window) Wait(ctx context.Context, s State, d time.Duration) (Outcome, error) {
	if _, ok := w.resolver.Table(s); !ok {
		return Outcome{}, fmt.Errorf("%w: no wait in state %s", ErrTerminal, s)
	}

	start := w.now()
	total := Ticks(d, w.tick)
	label := s.Label()

	interrupted := func(ticks int) Outcome {
		return Outcome{
			Action:      ActionShutDown,
			Interrupted: true,
			Elapsed:     w.now().Sub(start),
			Ticks:       ticks,
		}
	}

	if ctx.Err() != nil {
		return interrupted(0), nil
	}

	for i := 1; i <= total; i++ {
		deadline := start.Add(min(time.Duration(i)*w.tick, d))
		for {
			remaining := deadline.Sub(w.now())
			if remaining <= 0 {
				break
			}
			ev, ok, err := w.source.Poll(ctx, remaining)
			if ctx.Err() != nil {
				return interrupted(i - 1), nil
			}
			if err != nil {
				return Outcome{}, fmt.Errorf("poll events: %w", err)
			}
			if !ok {
				continue
			}
			if a, ok := w.resolver.Resolve(s, &ev); ok {
				return Outcome{
					Action:  a,
					Key:     ev.Key,
					Elapsed: w.now().Sub(start),
					Ticks:   i - 1,
				}, nil
			}
		}
		w.progress.Report(label, i, total)
	}

	a, _ := w.resolver.Resolve(s, nil)
	return Outcome{
		Action:   a,
		TimedOut: true,
		Elapsed:  w.now().Sub(start),
		Ticks:    total,
	}, nil
}
