package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dycw/skritter/internal/keys"
)

type pair struct {
	state  State
	action Action
}

// validPairs is every (state, action) with a table entry.
var validPairs = map[pair]bool{
	{StateInit, ActionAdvance}:              true,
	{StateInit, ActionTogglePause}:          true,
	{StateInit, ActionShutDown}:             true,
	{StateTest, ActionAdvance}:              true,
	{StateTest, ActionTogglePause}:          true,
	{StateTest, ActionFailCurrent}:          true,
	{StateTest, ActionFailPrevious}:         true,
	{StateTest, ActionShutDown}:             true,
	{StateTestPaused, ActionContinue}:       true,
	{StateTestPaused, ActionTogglePause}:    true,
	{StateTestPaused, ActionShutDown}:       true,
	{StateReview, ActionAdvance}:            true,
	{StateReview, ActionTogglePause}:        true,
	{StateReview, ActionFailCurrent}:        true,
	{StateReview, ActionFailPrevious}:       true,
	{StateReview, ActionShutDown}:           true,
	{StateReviewPaused, ActionContinue}:     true,
	{StateReviewPaused, ActionTogglePause}:  true,
	{StateReviewPaused, ActionShutDown}:     true,
	{StateForgotten, ActionFinishForgotten}: true,
	{StateForgotten, ActionTogglePause}:     true,
	{StateForgotten, ActionShutDown}:        true,
}

// resumeFor returns a consistent pause memory for s.
func resumeFor(s State) State {
	switch s {
	case StateTestPaused:
		return StateTest
	case StateReviewPaused:
		return StateReview
	}
	return ""
}

func TestTransitionTable(t *testing.T) {
	taps := DefaultTaps()

	tests := []struct {
		from       State
		action     Action
		wantTo     State
		wantResume State
		wantTaps   []keys.Key
	}{
		{StateInit, ActionAdvance, StateTest, "", nil},
		{StateInit, ActionTogglePause, StateTestPaused, StateTest, nil},
		{StateInit, ActionShutDown, StateShutDown, "", nil},
		{StateTest, ActionAdvance, StateReview, "", []keys.Key{"3", keys.Enter}},
		{StateTest, ActionTogglePause, StateTestPaused, StateTest, nil},
		{StateTest, ActionFailCurrent, StateForgotten, "", []keys.Key{"1", keys.Left, "1", keys.Left}},
		{StateTest, ActionFailPrevious, StateForgotten, "", []keys.Key{keys.Left, "1", keys.Left}},
		{StateTest, ActionShutDown, StateShutDown, "", nil},
		{StateTestPaused, ActionContinue, StateTestPaused, StateTest, nil},
		{StateTestPaused, ActionTogglePause, StateTest, "", nil},
		{StateTestPaused, ActionShutDown, StateShutDown, "", nil},
		{StateReview, ActionAdvance, StateTest, "", []keys.Key{"3"}},
		{StateReview, ActionTogglePause, StateReviewPaused, StateReview, nil},
		{StateReview, ActionFailCurrent, StateForgotten, "", []keys.Key{"1", keys.Left}},
		{StateReview, ActionFailPrevious, StateForgotten, "", []keys.Key{keys.Left, "1", keys.Left}},
		{StateReview, ActionShutDown, StateShutDown, "", nil},
		{StateReviewPaused, ActionContinue, StateReviewPaused, StateReview, nil},
		{StateReviewPaused, ActionTogglePause, StateReview, "", nil},
		{StateReviewPaused, ActionShutDown, StateShutDown, "", nil},
		{StateForgotten, ActionFinishForgotten, StateTest, "", []keys.Key{keys.Right}},
		{StateForgotten, ActionTogglePause, StateReviewPaused, StateReview, nil},
		{StateForgotten, ActionShutDown, StateShutDown, "", nil},
	}
	require.Len(t, tests, len(validPairs))

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			step, err := Transition(tt.from, resumeFor(tt.from), tt.action, taps)
			require.NoError(t, err)
			assert.Equal(t, tt.from, step.From)
			assert.Equal(t, tt.action, step.Action)
			assert.Equal(t, tt.wantTo, step.To)
			assert.Equal(t, tt.wantResume, step.Resume)
			assert.Equal(t, tt.wantTaps, step.Taps)
			assert.NoError(t, checkPauseMemory(step.To, step.Resume))
		})
	}
}

func TestTransitionInvalid(t *testing.T) {
	for _, s := range States() {
		for _, a := range Actions() {
			if validPairs[pair{s, a}] {
				continue
			}
			t.Run(string(s)+"/"+string(a), func(t *testing.T) {
				_, err := Transition(s, resumeFor(s), a, DefaultTaps())
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Contains(t, err.Error(), string(s))
				assert.Contains(t, err.Error(), string(a))
			})
		}
	}
}

func TestTransitionPauseRoundTrip(t *testing.T) {
	for _, s := range []State{StateTest, StateReview} {
		t.Run(string(s), func(t *testing.T) {
			paused, err := Transition(s, "", ActionTogglePause, DefaultTaps())
			require.NoError(t, err)
			assert.True(t, paused.To.Paused())
			assert.Equal(t, s, paused.Resume)

			resumed, err := Transition(paused.To, paused.Resume, ActionTogglePause, DefaultTaps())
			require.NoError(t, err)
			assert.Equal(t, s, resumed.To)
			assert.Empty(t, resumed.Resume)
		})
	}
}

func TestTransitionPausedWithoutMemory(t *testing.T) {
	_, err := Transition(StateReviewPaused, "", ActionTogglePause, DefaultTaps())
	assert.ErrorIs(t, err, ErrPauseMemory)
}

func TestTransitionShutDownFromEveryState(t *testing.T) {
	for _, s := range States() {
		if s.Terminal() {
			continue
		}
		step, err := Transition(s, resumeFor(s), ActionShutDown, DefaultTaps())
		require.NoError(t, err, s)
		assert.Equal(t, StateShutDown, step.To, s)
		assert.Empty(t, step.Resume, s)
		assert.Empty(t, step.Taps, s)
	}
}

func TestTransitionForgottenReturnsToTest(t *testing.T) {
	for _, from := range []State{StateTest, StateReview} {
		for _, a := range []Action{ActionFailCurrent, ActionFailPrevious} {
			step, err := Transition(from, "", a, DefaultTaps())
			require.NoError(t, err)
			require.Equal(t, StateForgotten, step.To)

			back, err := Transition(step.To, step.Resume, ActionFinishForgotten, DefaultTaps())
			require.NoError(t, err)
			assert.Equal(t, StateTest, back.To)
		}
	}
}

func TestCheckPauseMemory(t *testing.T) {
	assert.NoError(t, checkPauseMemory(StateTest, ""))
	assert.NoError(t, checkPauseMemory(StateTestPaused, StateTest))
	assert.NoError(t, checkPauseMemory(StateReviewPaused, StateReview))
	assert.ErrorIs(t, checkPauseMemory(StateTest, StateTest), ErrPauseMemory)
	assert.ErrorIs(t, checkPauseMemory(StateTestPaused, ""), ErrPauseMemory)
	assert.ErrorIs(t, checkPauseMemory(StateTestPaused, StateReview), ErrPauseMemory)
}

func TestTapsValidate(t *testing.T) {
	assert.NoError(t, DefaultTaps().Validate())

	taps := DefaultTaps()
	taps.Next = ""
	assert.EqualError(t, taps.Validate(), "tap next is empty")
}

func TestTapsKeys(t *testing.T) {
	taps := Taps{Success: "3", Confirm: keys.Enter, Fail: "3", Previous: keys.Left, Next: keys.Right}
	assert.Equal(t, []keys.Key{"3", keys.Enter, keys.Left, keys.Right}, taps.Keys())
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Init", StateInit.Label())
	assert.Equal(t, "Review Paused", StateReviewPaused.Label())
	assert.Equal(t, "Shut Down", StateShutDown.Label())
	assert.Equal(t, len("Review Paused"), LabelWidth())
}
