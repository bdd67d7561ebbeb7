package combat

import "github.com/cory-johannsen/taleweaver/internal/game/character"

// Weapon is a class's default attack: a damage die and the ability that
// governs both the attack bonus and the damage bonus.
type Weapon struct {
	Dice string
	Stat string // "str" or "dex"
}

var defaultWeapon = Weapon{Dice: "1d6", Stat: "str"}

var classWeapons = map[string]Weapon{
	character.ClassFighter: {Dice: "1d8", Stat: "str"},
	character.ClassWizard:  {Dice: "1d6", Stat: "str"},
	character.ClassRogue:   {Dice: "1d4", Stat: "dex"},
	character.ClassCleric:  {Dice: "1d6", Stat: "str"},
	character.ClassRanger:  {Dice: "1d8", Stat: "dex"},
	character.ClassBard:    {Dice: "1d8", Stat: "dex"},
}

// WeaponFor returns the weapon for class (case-insensitive); unknown classes get 1d6/STR.
func WeaponFor(class string) Weapon {
	c := character.Character{Class: class}
	if w, ok := classWeapons[c.ClassKey()]; ok {
		return w
	}
	return defaultWeapon
}

// Modifier returns the governing ability modifier from a.
func (w Weapon) Modifier(a character.AbilityScores) int {
	if w.Stat == "dex" {
		return a.DexMod()
	}
	return a.StrMod()
}
