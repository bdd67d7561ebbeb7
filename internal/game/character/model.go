// Package character defines the character sheet model and pure creation logic.
package character

import (
	"fmt"
	"strings"
)

// AbilityScores holds the six ability score values for a character.
type AbilityScores struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// Modifier computes the ability modifier using floor division: floor((score - 10) / 2).
//
// Postcondition: Returns floor((score - 10) / 2).
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// StrMod returns the strength modifier.
func (a AbilityScores) StrMod() int { return Modifier(a.Strength) }

// DexMod returns the dexterity modifier.
func (a AbilityScores) DexMod() int { return Modifier(a.Dexterity) }

// ConMod returns the constitution modifier.
func (a AbilityScores) ConMod() int { return Modifier(a.Constitution) }

// Character is the player's sheet as seen by the combat engine.
type Character struct {
	Name      string
	Class     string // one of the Class* constants, compared case-insensitively
	Level     int
	Abilities AbilityScores
	MaxHP     int
	CurrentHP int
}

// ClassKey returns the lower-cased class identifier used for table lookups.
func (c *Character) ClassKey() string {
	return strings.ToLower(strings.TrimSpace(c.Class))
}

// IsAlive reports whether the character has hit points left.
func (c *Character) IsAlive() bool { return c.CurrentHP > 0 }

// SetHP stores hp clamped to [0, MaxHP].
//
// Postcondition: 0 <= CurrentHP <= MaxHP.
func (c *Character) SetHP(hp int) {
	c.CurrentHP = max(0, min(hp, c.MaxHP))
}

// CombatSummary renders the one-line status the narrator sees, e.g.
// "Aria the level 1 wizard (HP 6/6)".
func (c *Character) CombatSummary() string {
	return fmt.Sprintf("%s the level %d %s (HP %d/%d)", c.Name, max(c.Level, 1), c.ClassKey(), c.CurrentHP, c.MaxHP)
}
