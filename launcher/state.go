package launcher

// State is a phase of the process lifecycle.
type State string

const (
	StateUnstarted    State = "UNSTARTED"
	StateBound        State = "BOUND"
	StateServing      State = "SERVING"
	StateShuttingDown State = "SHUTTING_DOWN"
	StateStopped      State = "STOPPED"

	// StateBindFailed is terminal: the listener could not be bound and the
	// process must exit.
	StateBindFailed State = "BIND_FAILED"
)

var transitions = map[State][]State{
	StateUnstarted:    {StateBound, StateBindFailed},
	StateBound:        {StateServing, StateShuttingDown},
	StateServing:      {StateShuttingDown},
	StateShuttingDown: {StateStopped},
}

// ValidTransition reports whether the lifecycle may move from one state to
// another. Terminal states allow no transitions.
func ValidTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state ends the lifecycle.
func (s State) Terminal() bool {
	return s == StateStopped || s == StateBindFailed
}
