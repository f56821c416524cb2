// Package inject sends synthetic key taps to whatever window has focus.
package inject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dycw/skritter/internal/keys"
)

// Injector taps keys: press then release.
type Injector interface {
	Tap(ctx context.Context, k keys.Key) error
	Close() error
}

// DeviceName is the name of the uinput keyboard. Event sources exclude it so
// injected taps are never read back as operator signals.
const DeviceName = "skritter virtual keyboard"

var (
	// ErrNotAvailable is returned when an injector cannot run on this platform.
	ErrNotAvailable = errors.New("injector not available on this platform")

	// ErrUnsupportedKey is returned for keys an injector cannot produce.
	ErrUnsupportedKey = errors.New("unsupported key")
)

// Kind names an injector implementation.
type Kind string

const (
	KindUinput  Kind = "uinput"
	KindXdotool Kind = "xdotool"
	KindDryRun  Kind = "dry-run"
)

// Kinds lists the selectable injectors.
func Kinds() []Kind {
	return []Kind{KindUinput, KindXdotool, KindDryRun}
}

// New builds the injector of the given kind. needed lists the keys the
// caller will tap, so device-backed injectors can register them upfront.
func New(kind Kind, needed []keys.Key, log *slog.Logger) (Injector, error) {
	if log == nil {
		log = slog.Default()
	}
	switch kind {
	case KindUinput:
		u, err := NewUinput(needed)
		if err != nil {
			return nil, err
		}
		return u, nil
	case KindXdotool:
		x, err := NewXdotool()
		if err != nil {
			return nil, err
		}
		return x, nil
	case KindDryRun:
		return NewDryRun(log), nil
	default:
		return nil, fmt.Errorf("unknown injector %q", kind)
	}
}

// Recorder records taps instead of sending them.
type Recorder struct {
	mu   sync.Mutex
	taps []keys.Key

	// Err, when set, is returned by every Tap after recording it.
	Err error
}

var _ Injector = (*Recorder)(nil)

func (r *Recorder) Tap(_ context.Context, k keys.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taps = append(r.taps, k)
	return r.Err
}

// Taps returns a copy of the recorded taps.
func (r *Recorder) Taps() []keys.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]keys.Key(nil), r.taps...)
}

// Reset clears the recorded taps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taps = nil
}

func (r *Recorder) Close() error { return nil }

// DryRun logs taps without sending them.
type DryRun struct {
	log *slog.Logger
}

// NewDryRun creates a DryRun injector writing to log.
func NewDryRun(log *slog.Logger) *DryRun {
	return &DryRun{log: log}
}

func (d *DryRun) Tap(_ context.Context, k keys.Key) error {
	d.log.Info("tap (dry run)", "key", k)
	return nil
}

func (d *DryRun) Close() error { return nil }
