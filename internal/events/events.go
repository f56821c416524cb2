// Package events provides keyboard event sources the review loop polls for
// operator signals.
//
// Platform support:
//   - Linux: reads /dev/input/event* keyboards (requires the input group or root)
//   - All platforms: Chan, fed by the terminal UI or by tests
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dycw/skritter/internal/keys"
)

// Kind distinguishes presses from releases and autorepeat.
type Kind int

const (
	Release Kind = iota
	Press
	Repeat
)

func (k Kind) String() string {
	switch k {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single raw key event.
type Event struct {
	Key    keys.Key
	Kind   Kind
	Time   time.Time
	Device string
}

// Source yields raw key events.
type Source interface {
	// Poll blocks until an event arrives, timeout elapses or ctx is done.
	// ok is false when the timeout elapsed without an event.
	Poll(ctx context.Context, timeout time.Duration) (ev Event, ok bool, err error)

	// Close releases the underlying devices.
	Close() error
}

var (
	// ErrNotAvailable is returned when a source cannot run on this platform.
	ErrNotAvailable = errors.New("event source not available on this platform")

	// ErrClosed is returned by Poll after Close.
	ErrClosed = errors.New("event source closed")
)

// DeviceError reports a failure reading a specific input device.
type DeviceError struct {
	Path string
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("input device %s: %v", e.Path, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
