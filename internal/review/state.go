package review

import "strings"

// State is the review loop's position in the test/review cycle.
type State string

const (
	StateInit         State = "init"
	StateTest         State = "test"
	StateTestPaused   State = "test_paused"
	StateReview       State = "review"
	StateReviewPaused State = "review_paused"
	StateForgotten    State = "forgotten"
	StateShutDown     State = "shut_down"
)

// States returns every state in cycle order.
func States() []State {
	return []State{
		StateInit,
		StateTest,
		StateTestPaused,
		StateReview,
		StateReviewPaused,
		StateForgotten,
		StateShutDown,
	}
}

// Paused reports whether s is one of the paused variants.
func (s State) Paused() bool {
	return s == StateTestPaused || s == StateReviewPaused
}

// Terminal reports whether s ends the loop.
func (s State) Terminal() bool {
	return s == StateShutDown
}

// Label is the human-readable name used for progress and the monitor UI,
// e.g. "Review Paused".
func (s State) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// LabelWidth is the length of the longest state label.
func LabelWidth() int {
	width := 0
	for _, s := range States() {
		if n := len(s.Label()); n > width {
			width = n
		}
	}
	return width
}

func (s State) String() string {
	return string(s)
}
