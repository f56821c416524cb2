package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/keys"
	"github.com/dycw/skritter/internal/progress"
)

type report struct {
	label       string
	done, total int
}

type reports struct {
	mu   sync.Mutex
	list []report
}

func (r *reports) Report(label string, done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, report{label, done, total})
}

func (r *reports) all() []report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report(nil), r.list...)
}

func newTestWindow(t *testing.T, tick time.Duration, rep progress.Reporter) (*Window, *events.Chan) {
	t.Helper()
	src := events.NewChan(0)
	t.Cleanup(func() { src.Close() })
	r, err := NewResolver(DefaultBindings())
	require.NoError(t, err)
	return NewWindow(src, r, tick, rep), src
}

func TestTicks(t *testing.T) {
	tests := []struct {
		d, tick time.Duration
		want    int
	}{
		{0, 100 * time.Millisecond, 0},
		{-time.Second, 100 * time.Millisecond, 0},
		{time.Second, 0, 0},
		{time.Second, 100 * time.Millisecond, 10},
		{1050 * time.Millisecond, 100 * time.Millisecond, 11},
		{50 * time.Millisecond, 100 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ticks(tt.d, tt.tick), "%s/%s", tt.d, tt.tick)
	}
}

func TestWaitTimeout(t *testing.T) {
	const (
		tick = 50 * time.Millisecond
		d    = 200 * time.Millisecond
	)
	rep := &reports{}
	w, _ := newTestWindow(t, tick, rep)

	out, err := w.Wait(context.Background(), StateTest, d)
	require.NoError(t, err)

	assert.Equal(t, ActionAdvance, out.Action)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Interrupted)
	assert.Empty(t, out.Key)
	assert.Equal(t, 4, out.Ticks)
	assert.GreaterOrEqual(t, out.Elapsed, d)
	assert.Less(t, out.Elapsed, d+tick)

	assert.Equal(t, []report{
		{"Test", 1, 4},
		{"Test", 2, 4},
		{"Test", 3, 4},
		{"Test", 4, 4},
	}, rep.all())
}

func TestWaitPartialTick(t *testing.T) {
	rep := &reports{}
	w, _ := newTestWindow(t, 10*time.Millisecond, rep)

	out, err := w.Wait(context.Background(), StateForgotten, 25*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, ActionFinishForgotten, out.Action)
	assert.Equal(t, 3, out.Ticks)
	assert.GreaterOrEqual(t, out.Elapsed, 25*time.Millisecond)

	got := rep.all()
	require.Len(t, got, 3)
	assert.Equal(t, report{"Forgotten", 3, 3}, got[2])
}

func TestWaitZeroDuration(t *testing.T) {
	rep := &reports{}
	w, _ := newTestWindow(t, 10*time.Millisecond, rep)

	out, err := w.Wait(context.Background(), StateInit, 0)
	require.NoError(t, err)
	assert.Equal(t, ActionAdvance, out.Action)
	assert.True(t, out.TimedOut)
	assert.Zero(t, out.Ticks)
	assert.Empty(t, rep.all())
}

func TestWaitSignalExitsEarly(t *testing.T) {
	w, src := newTestWindow(t, 10*time.Millisecond, nil)
	require.True(t, src.Push(events.Event{Key: "c", Kind: events.Press}))

	out, err := w.Wait(context.Background(), StateTest, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, ActionFailCurrent, out.Action)
	assert.Equal(t, keys.Key("c"), out.Key)
	assert.False(t, out.TimedOut)
	assert.Zero(t, out.Ticks)
}

func TestWaitSignalMidWait(t *testing.T) {
	w, src := newTestWindow(t, 10*time.Millisecond, nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		src.Push(events.Event{Key: "l", Kind: events.Press})
	}()

	out, err := w.Wait(context.Background(), StateReview, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, ActionFailPrevious, out.Action)
	assert.Less(t, out.Elapsed, 5*time.Second)
	assert.Positive(t, out.Ticks)
}

func TestWaitIgnoresUnrecognized(t *testing.T) {
	const (
		tick = 20 * time.Millisecond
		d    = 100 * time.Millisecond
	)
	w, src := newTestWindow(t, tick, nil)

	// Release and repeat of a bound key, then keys this state does not map.
	src.Push(events.Event{Key: "q", Kind: events.Release})
	src.Push(events.Event{Key: "q", Kind: events.Repeat})
	src.Push(events.Event{Key: "x", Kind: events.Press})
	src.Push(events.Event{Key: "c", Kind: events.Press})

	out, err := w.Wait(context.Background(), StateForgotten, d)
	require.NoError(t, err)
	assert.Equal(t, ActionFinishForgotten, out.Action)
	assert.True(t, out.TimedOut)
	assert.GreaterOrEqual(t, out.Elapsed, d)
	assert.Less(t, out.Elapsed, d+tick)
}

func TestWaitContextCancelled(t *testing.T) {
	w, _ := newTestWindow(t, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := w.Wait(ctx, StateTestPaused, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, ActionShutDown, out.Action)
	assert.True(t, out.Interrupted)
}

func TestWaitContextCancelledMidWait(t *testing.T) {
	w, _ := newTestWindow(t, 10*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	out, err := w.Wait(ctx, StateReview, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, ActionShutDown, out.Action)
	assert.True(t, out.Interrupted)
	assert.Less(t, out.Elapsed, 10*time.Second)
}

func TestWaitPollError(t *testing.T) {
	w, src := newTestWindow(t, 10*time.Millisecond, nil)
	boom := errors.New("boom")
	src.Fail(boom)

	_, err := w.Wait(context.Background(), StateTest, time.Second)
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "poll events: boom")
}

func TestWaitTerminal(t *testing.T) {
	w, _ := newTestWindow(t, 10*time.Millisecond, nil)

	_, err := w.Wait(context.Background(), StateShutDown, time.Second)
	assert.ErrorIs(t, err, ErrTerminal)
}
