package pacing

import (
	"fmt"

	"github.com/cory-johannsen/taleweaver/internal/game/quest"
)

// QuestCompleteMinTurn is the earliest turn a finished quest may close the
// adventure.
const QuestCompleteMinTurn = 25

// Snapshot is the read model the pacing functions consume.
type Snapshot struct {
	Turn     int
	MaxTurns int
	Phase    Phase
	// Quest is nil when no quest is active.
	Quest *quest.Quest
}

// Context is the per-turn pacing summary handed to the narrator.
type Context struct {
	CurrentTurn    int
	MaxTurns       int
	TurnsRemaining int
	Phase          Phase
	Urgency        float64
	Directive      string
	QuestProgress  float64
}

// String renders the context as a single prompt line.
func (c Context) String() string {
	return fmt.Sprintf("turn %d/%d (%d remaining), phase %s, urgency %.2f, quest %.0f%%: %s",
		c.CurrentTurn, c.MaxTurns, c.TurnsRemaining, c.Phase, c.Urgency, c.QuestProgress*100, c.Directive)
}

// ClosureReason names why an adventure closed.
type ClosureReason string

const (
	ClosureNone          ClosureReason = ""
	ClosureQuestComplete ClosureReason = "quest_complete"
	ClosureHardCap       ClosureReason = "hard_cap"
)

// ClosureStatus reports whether the adventure should end this turn.
type ClosureStatus struct {
	Triggered      bool
	Reason         ClosureReason
	TurnsRemaining int
}

// QuestProgress returns the completed fraction of the active quest.
//
// Postcondition: 0 <= result <= 1; 0 with no quest or no objectives.
func QuestProgress(s Snapshot) float64 {
	return s.Quest.Progress()
}

// Urgency combines turn share, quest progress and phase into one scalar.
//
// Postcondition: 0 <= result <= 1 for any non-negative turn.
func Urgency(s Snapshot) float64 {
	maxTurns := s.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	u := float64(s.Turn)/float64(maxTurns) + QuestProgress(s)*0.2 + s.Phase.urgencyModifier()
	return min(u, 1.0)
}

// Directive returns the narrative instruction for the current phase.
func Directive(s Snapshot) string {
	switch s.Phase {
	case PhaseRisingAction:
		if s.Turn < 10 {
			return "DEVELOP - Build quest engagement"
		}
		return "ESCALATE - Increase tension and stakes"
	case PhaseMidPoint:
		return "REVEAL - Introduce twist or major revelation"
	case PhaseClimax:
		if s.Turn >= 40 {
			return "CONFRONT - Drive toward final confrontation"
		}
		return "INTENSIFY - Build maximum tension"
	case PhaseDenouement:
		return "RESOLVE - Wind down and provide closure"
	default:
		return "ESTABLISH - Introduce character and world"
	}
}

// BuildContext assembles the pacing snapshot for one turn.
func BuildContext(s Snapshot) Context {
	return Context{
		CurrentTurn:    s.Turn,
		MaxTurns:       s.MaxTurns,
		TurnsRemaining: turnsRemaining(s),
		Phase:          s.Phase,
		Urgency:        Urgency(s),
		Directive:      Directive(s),
		QuestProgress:  QuestProgress(s),
	}
}

// CheckClosure evaluates the closure triggers. The hard cap is checked first
// and always wins; a complete quest only closes the adventure from turn
// QuestCompleteMinTurn onwards.
func CheckClosure(s Snapshot) ClosureStatus {
	if s.Turn >= s.MaxTurns {
		return ClosureStatus{Triggered: true, Reason: ClosureHardCap, TurnsRemaining: 0}
	}
	remaining := turnsRemaining(s)
	if QuestProgress(s) >= 1.0 && s.Turn >= QuestCompleteMinTurn {
		return ClosureStatus{Triggered: true, Reason: ClosureQuestComplete, TurnsRemaining: remaining}
	}
	return ClosureStatus{TurnsRemaining: remaining}
}

func turnsRemaining(s Snapshot) int {
	return max(0, s.MaxTurns-s.Turn)
}
