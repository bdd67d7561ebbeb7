package combat

import (
	"fmt"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/dice"
)

// FleeDC is the difficulty of escaping an encounter.
const FleeDC = 12

// DefendResult acknowledges a defend action.
type DefendResult struct {
	Success  bool
	LogEntry string
}

// FleeResult reports an escape attempt.
type FleeResult struct {
	Success  bool
	Roll     dice.RollResult
	Modifier int
	Total    int
	DC       int
	LogEntry string
	// FreeAttack is the enemy's advantage attack after a failed attempt; nil on success.
	FreeAttack *AttackResult
}

func requirePhase(s *State, want Phase) error {
	if !s.Active || s.Phase != want {
		return fmt.Errorf("%w: phase is %s, active=%t, want %s", ErrWrongTurn, s.Phase, s.Active, want)
	}
	return nil
}

// ExecutePlayerAttack attacks the enemy with the class weapon: the attack
// bonus is the governing ability modifier and the damage is base die plus
// that modifier.
//
// Precondition: c must be non-nil.
// Postcondition: Returns ErrWrongTurn unless the state is active in PLAYER_TURN.
func (e *Engine) ExecutePlayerAttack(s *State, c *character.Character) (AttackResult, error) {
	if err := requirePhase(s, PhasePlayerTurn); err != nil {
		return AttackResult{}, err
	}
	w := WeaponFor(c.Class)
	mod := w.Modifier(c.Abilities)
	return e.ResolveAttack(s.Player(), s.Enemy(), mod, fmt.Sprintf("%s%+d", w.Dice, mod), s, EdgeNone)
}

// ExecuteEnemyTurn makes the enemy attack the player with its template's
// attack bonus and damage dice. A pending defend imposes disadvantage and is
// cleared whatever the outcome.
//
// Postcondition: Returns ErrWrongTurn unless the state is active in ENEMY_TURN;
// PlayerDefending is false afterwards.
func (e *Engine) ExecuteEnemyTurn(s *State) (AttackResult, error) {
	if err := requirePhase(s, PhaseEnemyTurn); err != nil {
		return AttackResult{}, err
	}
	edge := EdgeNone
	if s.PlayerDefending {
		edge = EdgeDisadvantage
	}
	r, err := e.ResolveAttack(s.Enemy(), s.Player(), s.Template.AttackBonus, s.Template.DamageDice, s, edge)
	s.PlayerDefending = false
	return r, err
}

// ExecuteDefend raises the player's guard against the next enemy attack.
// No dice are rolled.
//
// Postcondition: PlayerDefending is true on success.
func (e *Engine) ExecuteDefend(s *State, c *character.Character) (DefendResult, error) {
	if err := requirePhase(s, PhasePlayerTurn); err != nil {
		return DefendResult{}, err
	}
	s.PlayerDefending = true
	line := s.logf("[Round %d] %s takes a defensive stance.", s.Round, c.Name)
	return DefendResult{Success: true, LogEntry: line}, nil
}

// ExecuteFlee rolls 1d20 + DEX modifier against FleeDC. On success the
// encounter stops at once. On failure the enemy gets a free attack with
// advantage, which is returned in FreeAttack.
//
// Postcondition: Returns ErrWrongTurn unless the state is active in PLAYER_TURN.
// Success implies !s.Active and FreeAttack == nil; failure implies s.Active
// and FreeAttack != nil.
func (e *Engine) ExecuteFlee(s *State, c *character.Character) (FleeResult, error) {
	if err := requirePhase(s, PhasePlayerTurn); err != nil {
		return FleeResult{}, err
	}
	mod := c.Abilities.DexMod()
	roll := e.roller.Roll(d20)
	r := FleeResult{
		Roll:     roll,
		Modifier: mod,
		Total:    roll.Total() + mod,
		DC:       FleeDC,
	}
	r.Success = r.Total >= FleeDC

	if r.Success {
		s.Active = false
		r.LogEntry = s.logf("[Round %d] %s flees: 1d20(%d)%+d=%d vs DC %d - ESCAPED", s.Round, c.Name, roll.Total(), mod, r.Total, FleeDC)
		return r, nil
	}

	r.LogEntry = s.logf("[Round %d] %s tries to flee: 1d20(%d)%+d=%d vs DC %d - FAILED", s.Round, c.Name, roll.Total(), mod, r.Total, FleeDC)
	free, err := e.ResolveAttack(s.Enemy(), s.Player(), s.Template.AttackBonus, s.Template.DamageDice, s, EdgeAdvantage)
	if err != nil {
		return r, err
	}
	r.FreeAttack = &free
	return r, nil
}
