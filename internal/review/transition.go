package review

import (
	"fmt"

	"github.com/dycw/skritter/internal/keys"
)

// Taps are the keys the target application reacts to.
type Taps struct {
	Success  keys.Key // grade the card as remembered
	Confirm  keys.Key // submit the answer in test
	Fail     keys.Key // grade the card as forgotten
	Previous keys.Key // move to the previous card
	Next     keys.Key // move to the next card
}

// DefaultTaps match the review page's keyboard shortcuts.
func DefaultTaps() Taps {
	return Taps{
		Success:  "3",
		Confirm:  keys.Enter,
		Fail:     "1",
		Previous: keys.Left,
		Next:     keys.Right,
	}
}

// Keys returns the distinct tap keys.
func (t Taps) Keys() []keys.Key {
	var out []keys.Key
	seen := make(map[keys.Key]bool)
	for _, k := range []keys.Key{t.Success, t.Confirm, t.Fail, t.Previous, t.Next} {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Validate checks every tap is set.
func (t Taps) Validate() error {
	for _, e := range []struct {
		name string
		key  keys.Key
	}{
		{"success", t.Success},
		{"confirm", t.Confirm},
		{"fail", t.Fail},
		{"previous", t.Previous},
		{"next", t.Next},
	} {
		if e.key == "" {
			return fmt.Errorf("tap %s is empty", e.name)
		}
	}
	return nil
}

// markForgotten grades the card forgotten and steps back onto it.
func (t Taps) markForgotten() []keys.Key {
	return []keys.Key{t.Fail, t.Previous}
}

func (t Taps) failPrevious() []keys.Key {
	return append([]keys.Key{t.Previous}, t.markForgotten()...)
}

// Step is the result of applying one action.
type Step struct {
	From   State
	Action Action
	To     State
	// Resume is the pause memory after the step; empty unless To is paused.
	Resume State
	Taps   []keys.Key
	// Key is the signal that produced Action; empty for timeouts.
	Key keys.Key
}

// Transition is the canonical transition table. It is pure: resume is the
// current pause memory, and the returned Step carries the next one.
func Transition(from, resume State, a Action, t Taps) (Step, error) {
	step := Step{From: from, Action: a}

	switch from {
	case StateInit:
		switch a {
		case ActionAdvance:
			step.To = StateTest
		case ActionTogglePause:
			step.To, step.Resume = StateTestPaused, StateTest
		case ActionShutDown:
			step.To = StateShutDown
		}

	case StateTest:
		switch a {
		case ActionAdvance:
			step.To, step.Taps = StateReview, []keys.Key{t.Success, t.Confirm}
		case ActionTogglePause:
			step.To, step.Resume = StateTestPaused, StateTest
		case ActionFailCurrent:
			step.To, step.Taps = StateForgotten, append([]keys.Key{t.Fail}, t.failPrevious()...)
		case ActionFailPrevious:
			step.To, step.Taps = StateForgotten, t.failPrevious()
		case ActionShutDown:
			step.To = StateShutDown
		}

	case StateTestPaused, StateReviewPaused:
		switch a {
		case ActionContinue:
			step.To, step.Resume = from, resume
		case ActionTogglePause:
			if resume == "" {
				return Step{}, fmt.Errorf("%w: %s has nothing to resume", ErrPauseMemory, from)
			}
			step.To = resume
		case ActionShutDown:
			step.To = StateShutDown
		}

	case StateReview:
		switch a {
		case ActionAdvance:
			step.To, step.Taps = StateTest, []keys.Key{t.Success}
		case ActionTogglePause:
			step.To, step.Resume = StateReviewPaused, StateReview
		case ActionFailCurrent:
			// The answer is already shown, so the card is graded here too.
			step.To, step.Taps = StateForgotten, t.markForgotten()
		case ActionFailPrevious:
			step.To, step.Taps = StateForgotten, t.failPrevious()
		case ActionShutDown:
			step.To = StateShutDown
		}

	case StateForgotten:
		switch a {
		case ActionFinishForgotten:
			step.To, step.Taps = StateTest, []keys.Key{t.Next}
		case ActionTogglePause:
			step.To, step.Resume = StateReviewPaused, StateReview
		case ActionShutDown:
			step.To = StateShutDown
		}
	}

	if step.To == "" {
		return Step{}, fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, a, from)
	}
	return step, nil
}

// checkPauseMemory enforces that resume is set exactly when s is paused, and
// that it names the state the paused variant belongs to.
func checkPauseMemory(s, resume State) error {
	var want State
	switch s {
	case StateTestPaused:
		want = StateTest
	case StateReviewPaused:
		want = StateReview
	}
	if resume != want {
		return fmt.Errorf("%w: state %s, resume %q", ErrPauseMemory, s, resume)
	}
	return nil
}
