// Package pacing maps an adventure's turn counter onto a five-phase narrative
// arc and decides when the adventure should close.
//
// Every function here is pure: it reads a Snapshot and returns a value.
package pacing

// Phase is a named stage of the narrative arc.
type Phase string

const (
	PhaseSetup        Phase = "SETUP"
	PhaseRisingAction Phase = "RISING_ACTION"
	PhaseMidPoint     Phase = "MID_POINT"
	PhaseClimax       Phase = "CLIMAX"
	PhaseDenouement   Phase = "DENOUEMENT"
)

// DefaultMaxTurns is the hard cap used when none is configured.
const DefaultMaxTurns = 50

// Phases returns every phase in arc order.
func Phases() []Phase {
	return []Phase{PhaseSetup, PhaseRisingAction, PhaseMidPoint, PhaseClimax, PhaseDenouement}
}

// PhaseForTurn returns the arc phase for an adventure turn.
//
// Precondition: turn >= 0; turn 0 (before the first action) maps to SETUP.
// Postcondition: Returns one of the five Phase constants.
func PhaseForTurn(turn int) Phase {
	switch {
	case turn <= 5:
		return PhaseSetup
	case turn <= 20:
		return PhaseRisingAction
	case turn <= 30:
		return PhaseMidPoint
	case turn <= 42:
		return PhaseClimax
	default: // 43+
		return PhaseDenouement
	}
}

// urgencyModifier is the additive urgency each phase contributes.
func (p Phase) urgencyModifier() float64 {
	switch p {
	case PhaseRisingAction:
		return 0.1
	case PhaseMidPoint:
		return 0.2
	case PhaseClimax:
		return 0.4
	case PhaseDenouement:
		return 0.3
	default:
		return 0.0
	}
}
