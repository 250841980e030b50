package epochs

// TransitionState is the state of the epoch transition machine. Exactly one
// Reconfiguration instance owns it; there are no concurrent transitions.
type TransitionState uint8

const (
	// StateIdle means no transition is in flight: every block checks the
	// elapsed-time gate and may trigger one.
	StateIdle TransitionState = iota
	// StateDKGInProgress means a transition has started and is suspended on
	// the out-of-band DKG protocol. Only a transcript from the consensus
	// engine or an emergency governance action ends this state.
	StateDKGInProgress
)

func (s TransitionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDKGInProgress:
		return "dkg_in_progress"
	default:
		return "unknown"
	}
}
