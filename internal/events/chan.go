package events

import (
	"context"
	"sync"
	"time"
)

// Chan is a Source fed by Push. The terminal UI forwards its key presses
// through one, and tests script events with it.
type Chan struct {
	ch        chan Event
	errs      chan error
	done      chan struct{}
	closeOnce sync.Once
}

var _ Source = (*Chan)(nil)

// NewChan creates a Chan buffering up to size events. Pushes beyond the
// buffer are dropped.
func NewChan(size int) *Chan {
	if size <= 0 {
		size = 64
	}
	return &Chan{
		ch:   make(chan Event, size),
		errs: make(chan error, 1),
		done: make(chan struct{}),
	}
}

// Push queues ev. It reports false if the buffer is full or the source is closed.
func (c *Chan) Push(ev Event) bool {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}

// Fail makes the next Poll return err. Only the first pending error is kept.
func (c *Chan) Fail(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

func (c *Chan) Poll(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	select {
	case err := <-c.errs:
		return Event{}, false, err
	case ev := <-c.ch:
		return ev, true, nil
	default:
	}
	if timeout <= 0 {
		return Event{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Event{}, false, ctx.Err()
	case <-c.done:
		return Event{}, false, ErrClosed
	case err := <-c.errs:
		return Event{}, false, err
	case ev := <-c.ch:
		return ev, true, nil
	case <-timer.C:
		return Event{}, false, nil
	}
}

func (c *Chan) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}
