package launcher

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateUnstarted, StateBound, true},
		{StateUnstarted, StateBindFailed, true},
		{StateBound, StateServing, true},
		{StateServing, StateShuttingDown, true},
		{StateShuttingDown, StateStopped, true},

		{StateUnstarted, StateServing, false},
		{StateServing, StateBound, false},
		{StateStopped, StateServing, false},
		{StateBindFailed, StateBound, false},
		{StateBindFailed, StateStopped, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []State{StateStopped, StateBindFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []State{StateUnstarted, StateBound, StateServing, StateShuttingDown} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
