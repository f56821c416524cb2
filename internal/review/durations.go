package review

import (
	"fmt"
	"time"
)

// DefaultWait is used for states missing from a Durations table.
const DefaultWait = 60 * time.Second

// DefaultTick is the polling subdivision of a wait.
const DefaultTick = 100 * time.Millisecond

// Durations maps a state to how long the loop waits in it.
type Durations map[State]time.Duration

// DefaultDurations returns the stock timings. The paused states keep the
// long default so a pause is only refreshed once a minute.
func DefaultDurations() Durations {
	return Durations{
		StateInit:         2 * time.Second,
		StateTest:         1500 * time.Millisecond,
		StateReview:       1500 * time.Millisecond,
		StateForgotten:    3 * time.Second,
		StateTestPaused:   DefaultWait,
		StateReviewPaused: DefaultWait,
	}
}

// For returns the wait for s, falling back to DefaultWait.
func (d Durations) For(s State) time.Duration {
	if v, ok := d[s]; ok {
		return v
	}
	return DefaultWait
}

// Validate rejects negative waits and entries for the terminal state.
func (d Durations) Validate() error {
	for s, v := range d {
		if s.Terminal() {
			return fmt.Errorf("duration set for terminal state %s", s)
		}
		if v < 0 {
			return fmt.Errorf("duration for %s is negative: %s", s, v)
		}
	}
	return nil
}

// Seconds converts float seconds, as taken on the command line, to a
// Duration.
func Seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
