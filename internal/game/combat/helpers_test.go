package combat_test

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/combat"
	"github.com/cory-johannsen/taleweaver/internal/game/dice"
	"github.com/cory-johannsen/taleweaver/internal/game/npc"
)

// fixedSrc returns val (mod n) for every Intn call, so every die shows val+1
// whenever val < n.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int { return f.val % n }

// countingSrc counts draws and delegates to fixedSrc.
type countingSrc struct {
	fixedSrc
	calls int
}

func (c *countingSrc) Intn(n int) int {
	c.calls++
	return c.fixedSrc.Intn(n)
}

func newEngine(src dice.Source) *combat.Engine {
	return combat.NewEngine(npc.DefaultRegistry(), dice.NewLoggedRoller(src, zap.NewNop()), zap.NewNop())
}

func hero(class string) *character.Character {
	return &character.Character{
		Name:  "Hero",
		Class: class,
		Level: 1,
		Abilities: character.AbilityScores{
			Strength: 16, Dexterity: 14, Constitution: 12,
			Intelligence: 10, Wisdom: 10, Charisma: 8,
		},
		MaxHP:     20,
		CurrentHP: 20,
	}
}

func goblin() npc.Template {
	tmpl, err := npc.DefaultRegistry().Lookup("goblin")
	if err != nil {
		panic(err)
	}
	return tmpl
}

// playerTurnState builds a fresh encounter with the player acting first.
func playerTurnState() *combat.State {
	g := goblin()
	return &combat.State{
		Active: true,
		Phase:  combat.PhasePlayerTurn,
		Round:  1,
		Combatants: []*combat.Combatant{
			{ID: combat.PlayerID, Name: "Hero", Role: combat.RolePlayer, CurrentHP: 20, MaxHP: 20, AC: 12, Alive: true},
			{ID: combat.EnemyID, Name: g.Name, Role: combat.RoleEnemy, CurrentHP: g.MaxHP, MaxHP: g.MaxHP, AC: g.AC, Alive: true},
		},
		TurnOrder: []string{combat.PlayerID, combat.EnemyID},
		Template:  g,
	}
}

func enemyTurnState() *combat.State {
	s := playerTurnState()
	s.TurnIndex = 1
	s.Phase = combat.PhaseEnemyTurn
	return s
}
