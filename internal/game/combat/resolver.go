package combat

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/game/dice"
)

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	AttackerID string
	DefenderID string
	Hit        bool
	// AttackRoll is the d20 roll; two dice when rolled with an edge.
	AttackRoll  dice.RollResult
	AttackBonus int
	// TotalAttack is AttackRoll.Total() + AttackBonus.
	TotalAttack int
	DefenderAC  int
	// DamageRoll is nil on a miss.
	DamageRoll    *dice.RollResult
	DamageDealt   int
	DefenderHP    int
	DefenderAlive bool
	LogEntry      string
}

// ResolveAttack rolls attacker's attack against defender and applies damage.
//
// The attack hits iff d20 + attackBonus >= defender AC. On a hit damageDice is
// rolled and subtracted from the defender's HP, floored at 0; a negative damage
// total deals 0. On a miss no damage roll is made. One line is appended to
// state.Log in either case.
//
// Phase and turn are not checked here.
//
// Precondition: attacker, defender and state must be non-nil.
// Postcondition: Returns a fully populated AttackResult, or an error wrapping
// dice.ErrInvalidNotation when damageDice is malformed (state is then unchanged).
func (e *Engine) ResolveAttack(attacker, defender *Combatant, attackBonus int, damageDice string, state *State, edge Edge) (AttackResult, error) {
	dmgExpr, err := dice.Parse(damageDice)
	if err != nil {
		return AttackResult{}, fmt.Errorf("resolving attack by %s: %w", attacker.Name, err)
	}

	var roll dice.RollResult
	switch edge {
	case EdgeAdvantage:
		roll = e.roller.RollAdvantage()
	case EdgeDisadvantage:
		roll = e.roller.RollDisadvantage()
	default:
		roll = e.roller.Roll(d20)
	}

	total := roll.Total() + attackBonus
	r := AttackResult{
		AttackerID:  attacker.ID,
		DefenderID:  defender.ID,
		Hit:         total >= defender.AC,
		AttackRoll:  roll,
		AttackBonus: attackBonus,
		TotalAttack: total,
		DefenderAC:  defender.AC,
	}

	if r.Hit {
		dmg := e.roller.Roll(dmgExpr)
		r.DamageRoll = &dmg
		r.DamageDealt = max(0, dmg.Total())
		defender.ApplyDamage(r.DamageDealt)
	}
	r.DefenderHP = defender.CurrentHP
	r.DefenderAlive = defender.Alive
	r.LogEntry = state.logf("%s", formatAttack(state.Round, attacker, defender, r))

	e.logger.Debug("attack resolved",
		zap.Int("round", state.Round),
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.Bool("hit", r.Hit),
		zap.Int("total", r.TotalAttack),
		zap.Int("ac", r.DefenderAC),
		zap.Int("damage", r.DamageDealt),
	)
	return r, nil
}

// formatAttack renders e.g.
//
//	[Round 2] Hero attacks Goblin: 1d20(14)+3=17 vs AC 15 - HIT for 6 damage (Goblin HP 1/7)
//	[Round 2] Goblin attacks Hero: 2d20(4/17 disadvantage)+4=8 vs AC 12 - MISS
func formatAttack(round int, attacker, defender *Combatant, r AttackResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Round %d] %s attacks %s: ", round, attacker.Name, defender.Name)
	switch r.AttackRoll.Mode {
	case dice.ModeAdvantage, dice.ModeDisadvantage:
		fmt.Fprintf(&b, "2d20(%d/%d %s)", r.AttackRoll.Dice[0], r.AttackRoll.Dice[1], r.AttackRoll.Mode)
	default:
		fmt.Fprintf(&b, "1d20(%d)", r.AttackRoll.Total())
	}
	fmt.Fprintf(&b, "%+d=%d vs AC %d - ", r.AttackBonus, r.TotalAttack, r.DefenderAC)
	if !r.Hit {
		b.WriteString("MISS")
		return b.String()
	}
	fmt.Fprintf(&b, "HIT for %d damage (%s HP %d/%d)", r.DamageDealt, defender.Name, defender.CurrentHP, defender.MaxHP)
	if !defender.Alive {
		fmt.Fprintf(&b, "; %s falls!", defender.Name)
	}
	return b.String()
}
