// Package dice provides dice notation parsing, the randomness abstraction and
// roll-result types shared by the combat engine.
package dice

import (
	"fmt"
	"slices"
)

// Mode selects how the individual dice of a roll are folded into its total.
type Mode int

const (
	// ModeSum adds every die plus the modifier.
	ModeSum Mode = iota
	// ModeAdvantage keeps the highest die.
	ModeAdvantage
	// ModeDisadvantage keeps the lowest die.
	ModeDisadvantage
)

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case ModeSum:
		return "sum"
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return "unknown"
	}
}

// RollResult holds the full audit trail for a single dice roll evaluation.
// A RollResult is a value; nothing in this package mutates one after it is returned.
//
// Postcondition: for ModeSum, Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // notation as rolled, e.g. "2d6+3" or "2d20 (advantage)"
	Dice       []int  // individual die results in roll order
	Modifier   int    // flat modifier (may be negative)
	Mode       Mode
}

// Total returns the value of the roll.
//
// Postcondition: ModeSum returns sum(Dice)+Modifier; ModeAdvantage returns
// max(Dice)+Modifier; ModeDisadvantage returns min(Dice)+Modifier.
func (r RollResult) Total() int {
	switch r.Mode {
	case ModeAdvantage:
		return slices.Max(r.Dice) + r.Modifier
	case ModeDisadvantage:
		return slices.Min(r.Dice) + r.Modifier
	}
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Natural returns the die that decided a d20 check: the kept die for
// advantage/disadvantage rolls, otherwise the first die.
//
// Precondition: len(r.Dice) >= 1.
func (r RollResult) Natural() int {
	switch r.Mode {
	case ModeAdvantage:
		return slices.Max(r.Dice)
	case ModeDisadvantage:
		return slices.Min(r.Dice)
	}
	return r.Dice[0]
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// A zero modifier is omitted: "1d20 → [14] = 14".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	diceStr := fmt.Sprintf("%v", r.Dice)
	if r.Modifier == 0 {
		return fmt.Sprintf("%s → %s = %d", r.Expression, diceStr, r.Total())
	}
	return fmt.Sprintf("%s → %s %+d = %d", r.Expression, diceStr, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
