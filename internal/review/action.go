package review

// Action is the effect resolved for one wait: either a classified signal or
// the state's timeout entry.
type Action string

const (
	ActionAdvance         Action = "advance"
	ActionTogglePause     Action = "toggle-pause"
	ActionFailCurrent     Action = "fail-current"
	ActionFailPrevious    Action = "fail-previous"
	ActionFinishForgotten Action = "finish-forgotten"
	ActionShutDown        Action = "shut-down"
	ActionContinue        Action = "continue"
)

// Actions returns every action.
func Actions() []Action {
	return []Action{
		ActionAdvance,
		ActionTogglePause,
		ActionFailCurrent,
		ActionFailPrevious,
		ActionFinishForgotten,
		ActionShutDown,
		ActionContinue,
	}
}

func (a Action) String() string {
	return string(a)
}
