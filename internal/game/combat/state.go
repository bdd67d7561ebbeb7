package combat

import (
	"fmt"

	"github.com/cory-johannsen/taleweaver/internal/game/npc"
)

// Combatant IDs used for the two sides of an encounter.
const (
	PlayerID = "player"
	EnemyID  = "enemy"
)

// State holds the live state of a single encounter. A State is owned by one
// session and assumes single-writer access.
type State struct {
	// Active is false once the encounter ended or the player escaped.
	Active bool
	Phase  Phase
	// Round starts at 1 and increments each time the turn order wraps.
	Round      int
	Combatants []*Combatant
	// TurnOrder holds combatant IDs, highest initiative first.
	TurnOrder []string
	// TurnIndex indexes TurnOrder. Invariant: 0 <= TurnIndex < len(TurnOrder).
	TurnIndex int
	// Template is the enemy archetype in play.
	Template npc.Template
	// Log is append-only.
	Log []string
	// PlayerDefending is consumed by the next enemy attack.
	PlayerDefending bool
}

// Combatant returns the combatant with the given id, or nil.
func (s *State) Combatant(id string) *Combatant {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Player returns the first player combatant, or nil.
func (s *State) Player() *Combatant {
	return s.firstWithRole(RolePlayer)
}

// Enemy returns the first enemy combatant, or nil.
func (s *State) Enemy() *Combatant {
	return s.firstWithRole(RoleEnemy)
}

func (s *State) firstWithRole(r Role) *Combatant {
	for _, c := range s.Combatants {
		if c.Role == r {
			return c
		}
	}
	return nil
}

// Current returns the combatant whose turn it is.
func (s *State) Current() *Combatant {
	if len(s.TurnOrder) == 0 {
		return nil
	}
	return s.Combatant(s.TurnOrder[s.TurnIndex])
}

func (s *State) logf(format string, args ...any) string {
	line := fmt.Sprintf(format, args...)
	s.Log = append(s.Log, line)
	return line
}

// AdvanceTurn moves to the next combatant in initiative order. Wrapping past
// the end resets TurnIndex to 0 and increments Round. Phase is recomputed
// from the new current combatant's role. A resolved encounter is left untouched.
//
// Postcondition: 0 <= TurnIndex < len(TurnOrder).
func (s *State) AdvanceTurn() {
	if s.Phase == PhaseResolution || len(s.TurnOrder) == 0 {
		return
	}
	s.TurnIndex++
	if s.TurnIndex >= len(s.TurnOrder) {
		s.TurnIndex = 0
		s.Round++
	}
	s.Phase = phaseFor(s.Current())
}

func phaseFor(c *Combatant) Phase {
	if c != nil && c.Role == RoleEnemy {
		return PhaseEnemyTurn
	}
	return PhasePlayerTurn
}

// CheckEnd reports whether the encounter is decided. The enemy is checked
// first, so a simultaneous death would read as victory.
//
// Postcondition: Returns (true, ResultVictory) iff the enemy is dead,
// (true, ResultDefeat) iff the player is dead and the enemy alive,
// (false, ResultNone) otherwise.
func (s *State) CheckEnd() (bool, Result) {
	if e := s.Enemy(); e != nil && !e.Alive {
		return true, ResultVictory
	}
	if p := s.Player(); p != nil && !p.Alive {
		return true, ResultDefeat
	}
	return false, ResultNone
}

// End closes the encounter with result and appends the closing log line.
//
// Postcondition: Active is false and Phase is PhaseResolution.
func (s *State) End(result Result) {
	s.Active = false
	s.Phase = PhaseResolution
	switch result {
	case ResultVictory:
		s.logf("Victory! The %s has been defeated.", s.Template.Name)
	case ResultDefeat:
		name := "The hero"
		if p := s.Player(); p != nil {
			name = p.Name
		}
		s.logf("Defeat... %s has fallen.", name)
	default:
		s.logf("The fight is over.")
	}
}
