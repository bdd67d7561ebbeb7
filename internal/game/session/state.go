// Package session owns per-adventure game state and serializes access to it.
package session

import (
	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/combat"
	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
	"github.com/cory-johannsen/taleweaver/internal/game/quest"
)

// GameState is one adventure in progress.
type GameState struct {
	// ID is the session identifier assigned by the Manager.
	ID string
	// Character is the player's sheet; combat writes HP back into it.
	Character *character.Character
	// AdventureTurn counts resolved player turns, clamped to [0, MaxTurns].
	AdventureTurn int
	// MaxTurns is the hard cap on AdventureTurn.
	MaxTurns int
	// Phase is normally derived from AdventureTurn; see SetPhase.
	Phase pacing.Phase
	// Quest is the active quest, or nil.
	Quest *quest.Quest
	// Combat is the encounter in progress, or nil outside combat.
	Combat *combat.State
	// Finished is set once a closure trigger fires or the player falls.
	Finished bool
	// Closure records why the adventure finished.
	Closure pacing.ClosureReason
}

// NewGameState creates an adventure at turn 0.
//
// Precondition: c must be non-nil.
// Postcondition: MaxTurns >= 1 (pacing.DefaultMaxTurns when maxTurns <= 0); Phase is SETUP.
func NewGameState(id string, c *character.Character, q *quest.Quest, maxTurns int) *GameState {
	if maxTurns <= 0 {
		maxTurns = pacing.DefaultMaxTurns
	}
	return &GameState{
		ID:        id,
		Character: c,
		MaxTurns:  maxTurns,
		Phase:     pacing.PhaseForTurn(0),
		Quest:     q,
	}
}

// AdvanceTurn increments the turn counter and recomputes the phase.
//
// Postcondition: AdventureTurn is in [0, MaxTurns]; Phase == pacing.PhaseForTurn(AdventureTurn).
func (g *GameState) AdvanceTurn() {
	g.SetTurn(g.AdventureTurn + 1)
}

// SetTurn jumps to turn n, clamped to [0, MaxTurns], and recomputes the phase.
func (g *GameState) SetTurn(n int) {
	g.AdventureTurn = max(0, min(n, g.MaxTurns))
	g.Phase = pacing.PhaseForTurn(g.AdventureTurn)
}

// SetPhase overrides the phase without touching the turn counter. The next
// AdvanceTurn derives the phase from the turn again. Used by demos and tests.
func (g *GameState) SetPhase(p pacing.Phase) {
	g.Phase = p
}

// InCombat reports whether an encounter is running.
func (g *GameState) InCombat() bool {
	return g.Combat != nil && g.Combat.Active
}

// Snapshot returns the pacing read model for this state.
func (g *GameState) Snapshot() pacing.Snapshot {
	return pacing.Snapshot{
		Turn:     g.AdventureTurn,
		MaxTurns: g.MaxTurns,
		Phase:    g.Phase,
		Quest:    g.Quest,
	}
}
