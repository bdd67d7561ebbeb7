package combat

// InitiativeResult is one combatant's initiative roll.
type InitiativeResult struct {
	ID       string
	Roll     int
	Modifier int
	Total    int
}

// RollInitiative rolls 1d20 + modifier for each combatant, in slice order.
// A combatant missing from mods rolls with modifier 0. Combatants are not mutated.
//
// Postcondition: len(result) == len(combatants); result[i].Total == Roll + Modifier.
func (e *Engine) RollInitiative(combatants []*Combatant, mods map[string]int) []InitiativeResult {
	results := make([]InitiativeResult, 0, len(combatants))
	for _, c := range combatants {
		roll := e.roller.Roll(d20).Total()
		mod := mods[c.ID]
		results = append(results, InitiativeResult{
			ID:       c.ID,
			Roll:     roll,
			Modifier: mod,
			Total:    roll + mod,
		})
	}
	return results
}
