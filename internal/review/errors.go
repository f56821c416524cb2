package review

import "errors"

var (
	// ErrInvalidTransition means an action has no entry for the current
	// state. It indicates a bug in the tables, never operator input.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrPauseMemory means the resume state is set outside a paused state
	// or missing inside one.
	ErrPauseMemory = errors.New("pause memory out of sync with state")

	// ErrTerminal is returned when stepping a machine that has shut down.
	ErrTerminal = errors.New("machine has shut down")
)
