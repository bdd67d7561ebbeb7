package combat_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/taleweaver/internal/game/combat"
	"github.com/cory-johannsen/taleweaver/internal/game/dice"
	"github.com/cory-johannsen/taleweaver/internal/game/npc"
)

func TestStartCombat_Property_Invariants(t *testing.T) {
	eng := newEngine(dice.NewCryptoSource())
	rapid.Check(t, func(rt *rapid.T) {
		key := rapid.SampledFrom(npc.DefaultRegistry().Keys()).Draw(rt, "enemy")
		c := hero("fighter")
		c.Abilities.Dexterity = rapid.IntRange(1, 20).Draw(rt, "dex")

		s, inits, err := eng.StartCombat(c, key)
		require.NoError(rt, err)

		assert.True(rt, s.Active)
		assert.Equal(rt, 1, s.Round)
		require.Len(rt, s.Combatants, 2)
		require.Len(rt, inits, 2)
		assert.ElementsMatch(rt, []string{combat.PlayerID, combat.EnemyID}, s.TurnOrder)
		assert.True(rt, sort.SliceIsSorted(s.TurnOrder, func(i, j int) bool {
			return s.Combatant(s.TurnOrder[i]).Initiative > s.Combatant(s.TurnOrder[j]).Initiative
		}))
		if s.Current().Role == combat.RolePlayer {
			assert.Equal(rt, combat.PhasePlayerTurn, s.Phase)
		} else {
			assert.Equal(rt, combat.PhaseEnemyTurn, s.Phase)
		}
		assert.Equal(rt, 10+c.Abilities.DexMod(), s.Player().AC)
		for _, r := range inits {
			assert.Equal(rt, r.Roll+r.Modifier, r.Total)
			assert.GreaterOrEqual(rt, r.Roll, 1)
			assert.LessOrEqual(rt, r.Roll, 20)
		}
	})
}

func TestStartCombat_CopiesEnemyTemplate(t *testing.T) {
	eng := newEngine(fixedSrc{val: 9})
	s, _, err := eng.StartCombat(hero("fighter"), "orc")
	require.NoError(t, err)

	e := s.Enemy()
	assert.Equal(t, "Orc", e.Name)
	assert.Equal(t, 15, e.MaxHP)
	assert.Equal(t, 15, e.CurrentHP)
	assert.Equal(t, 13, e.AC)
	assert.True(t, e.Alive)
	assert.Equal(t, "orc", s.Template.ID)

	p := s.Player()
	assert.Equal(t, 20, p.CurrentHP)
	assert.Equal(t, 12, p.AC) // 10 + DEX 14 mod 2
	assert.True(t, p.Alive)
}

func TestStartCombat_TieKeepsPlayerFirst(t *testing.T) {
	eng := newEngine(fixedSrc{val: 9})
	c := hero("fighter")
	c.Abilities.Dexterity = 10

	s, inits, err := eng.StartCombat(c, "goblin")
	require.NoError(t, err)
	assert.Equal(t, inits[0].Total, inits[1].Total)
	assert.Equal(t, []string{combat.PlayerID, combat.EnemyID}, s.TurnOrder)
	assert.Equal(t, combat.PhasePlayerTurn, s.Phase)
}

func TestStartCombat_EnemyFirstWhenFaster(t *testing.T) {
	eng := newEngine(fixedSrc{val: 9})
	c := hero("fighter")
	c.Abilities.Dexterity = 8

	s, inits, err := eng.StartCombat(c, "goblin")
	require.NoError(t, err)
	assert.Equal(t, combat.InitiativeResult{ID: combat.PlayerID, Roll: 10, Modifier: -1, Total: 9}, inits[0])
	assert.Equal(t, combat.InitiativeResult{ID: combat.EnemyID, Roll: 10, Modifier: 0, Total: 10}, inits[1])
	assert.Equal(t, []string{combat.EnemyID, combat.PlayerID}, s.TurnOrder)
	assert.Equal(t, combat.PhaseEnemyTurn, s.Phase)
	assert.Equal(t, 10, s.Enemy().Initiative)
	assert.Equal(t, 9, s.Player().Initiative)
}

func TestStartCombat_LogsOpening(t *testing.T) {
	eng := newEngine(fixedSrc{val: 9})
	s, _, err := eng.StartCombat(hero("fighter"), "wolf")
	require.NoError(t, err)
	require.Len(t, s.Log, 3)
	assert.Contains(t, s.Log[0], "Combat begins! Hero faces a Wolf.")
	assert.Equal(t, "Hero rolls initiative: 10+2 = 12", s.Log[1])
	assert.Equal(t, "Wolf rolls initiative: 10+0 = 10", s.Log[2])
}

func TestStartCombat_UnknownEnemy(t *testing.T) {
	eng := newEngine(dice.NewCryptoSource())
	_, _, err := eng.StartCombat(hero("fighter"), "no-such-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, npc.ErrUnknownEnemyType)
	assert.Contains(t, err.Error(), "goblin")
}

func TestStartCombatOrDefault_FallsBack(t *testing.T) {
	eng := newEngine(fixedSrc{val: 9})
	s, _, used, err := eng.StartCombatOrDefault(hero("fighter"), "dragon", npc.DefaultEnemy)
	require.NoError(t, err)
	assert.Equal(t, "goblin", used)
	assert.Equal(t, "Goblin", s.Enemy().Name)

	_, _, _, err = eng.StartCombatOrDefault(hero("fighter"), "dragon", "hydra")
	assert.ErrorIs(t, err, npc.ErrUnknownEnemyType)
}

func TestRollInitiative_DefaultsMissingModifier(t *testing.T) {
	eng := newEngine(fixedSrc{val: 13})
	cs := []*combat.Combatant{{ID: "a"}, {ID: "b"}}
	res := eng.RollInitiative(cs, map[string]int{"a": 3})
	require.Len(t, res, 2)
	assert.Equal(t, combat.InitiativeResult{ID: "a", Roll: 14, Modifier: 3, Total: 17}, res[0])
	assert.Equal(t, combat.InitiativeResult{ID: "b", Roll: 14, Modifier: 0, Total: 14}, res[1])
	assert.Zero(t, cs[0].Initiative, "combatants are not mutated")
}
