// Package combat implements the turn-based encounter engine: initiative,
// attack resolution, defend and flee actions, and combat-end detection.
package combat

import "errors"

// ErrWrongTurn is returned when an action is attempted outside its phase or
// after the encounter stopped.
var ErrWrongTurn = errors.New("not this combatant's turn")

// Role distinguishes the player combatant from enemy combatants.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

// String returns a human-readable role label.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Phase is the encounter state machine position.
//
// INITIATIVE moves to PLAYER_TURN or ENEMY_TURN, those alternate, and
// RESOLUTION is terminal.
type Phase int

const (
	PhaseInitiative Phase = iota
	PhasePlayerTurn
	PhaseEnemyTurn
	PhaseResolution
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitiative:
		return "INITIATIVE"
	case PhasePlayerTurn:
		return "PLAYER_TURN"
	case PhaseEnemyTurn:
		return "ENEMY_TURN"
	case PhaseResolution:
		return "RESOLUTION"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome reported by State.CheckEnd.
type Result string

const (
	ResultNone    Result = ""
	ResultVictory Result = "victory"
	ResultDefeat  Result = "defeat"
)

// Edge selects how the attack d20 is rolled.
// Advantage and disadvantage are mutually exclusive by construction.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeAdvantage
	EdgeDisadvantage
)

// Combatant represents one participant in an encounter.
//
// Invariant: 0 <= CurrentHP <= MaxHP; CurrentHP == 0 implies !Alive.
type Combatant struct {
	ID         string
	Name       string
	Role       Role
	Initiative int
	CurrentHP  int
	MaxHP      int
	AC         int
	Alive      bool
}

// IsPlayer reports whether this combatant is the player character.
func (c *Combatant) IsPlayer() bool { return c.Role == RolePlayer }

// ApplyDamage reduces CurrentHP by amount, flooring at zero, and marks the
// combatant dead when it reaches zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0; Alive is false iff CurrentHP was driven to 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP <= 0 {
		c.CurrentHP = 0
		c.Alive = false
	}
}
