package character

import (
	"errors"
	"fmt"
	"sort"
)

// Class identifiers understood by the builder and the combat weapon table.
const (
	ClassFighter = "fighter"
	ClassWizard  = "wizard"
	ClassRogue   = "rogue"
	ClassCleric  = "cleric"
	ClassRanger  = "ranger"
	ClassBard    = "bard"
)

// ErrUnknownClass is returned when building a character for a class outside the table.
var ErrUnknownClass = errors.New("unknown character class")

type classDef struct {
	keyAbility string
	hitDie     int
}

var classes = map[string]classDef{
	ClassFighter: {keyAbility: "strength", hitDie: 10},
	ClassWizard:  {keyAbility: "intelligence", hitDie: 6},
	ClassRogue:   {keyAbility: "dexterity", hitDie: 8},
	ClassCleric:  {keyAbility: "wisdom", hitDie: 8},
	ClassRanger:  {keyAbility: "dexterity", hitDie: 10},
	ClassBard:    {keyAbility: "charisma", hitDie: 8},
}

// Classes returns the known class identifiers in sorted order.
func Classes() []string {
	out := make([]string, 0, len(classes))
	for k := range classes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// applyModifiers starts all abilities at 10 and adds the given deltas.
func applyModifiers(mods map[string]int) AbilityScores {
	a := AbilityScores{
		Strength: 10, Dexterity: 10, Constitution: 10,
		Intelligence: 10, Wisdom: 10, Charisma: 10,
	}
	for ability, delta := range mods {
		a = boost(a, ability, delta)
	}
	return a
}

func boost(a AbilityScores, ability string, delta int) AbilityScores {
	switch ability {
	case "strength":
		a.Strength += delta
	case "dexterity":
		a.Dexterity += delta
	case "constitution":
		a.Constitution += delta
	case "intelligence":
		a.Intelligence += delta
	case "wisdom":
		a.Wisdom += delta
	case "charisma":
		a.Charisma += delta
	}
	return a
}

// Build constructs a level 1 Character. Ability scores start at 10, mods are
// applied, then the class key ability receives a +4 boost.
// HP = max(1, class hit die + CON modifier).
//
// Precondition: name must be non-empty.
// Postcondition: Returns a Character at full HP, or an error wrapping ErrUnknownClass.
func Build(name, class string, mods map[string]int) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	c := &Character{Name: name, Class: class, Level: 1}
	def, ok := classes[c.ClassKey()]
	if !ok {
		return nil, fmt.Errorf("%w %q: valid classes are %v", ErrUnknownClass, class, Classes())
	}

	abilities := applyModifiers(mods)
	abilities = boost(abilities, def.keyAbility, 4)

	maxHP := max(1, def.hitDie+abilities.ConMod())
	c.Abilities = abilities
	c.MaxHP = maxHP
	c.CurrentHP = maxHP
	return c, nil
}

// AbilityName returns the short display label for an ability score field.
func AbilityName(field string) string {
	names := map[string]string{
		"strength":     "STR",
		"dexterity":    "DEX",
		"constitution": "CON",
		"intelligence": "INT",
		"wisdom":       "WIS",
		"charisma":     "CHA",
	}
	if n, ok := names[field]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", field)
}
