package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/taleweaver/internal/game/combat"
)

func TestCombatant_IsPlayer(t *testing.T) {
	p := combat.Combatant{Role: combat.RolePlayer}
	n := combat.Combatant{Role: combat.RoleEnemy}
	assert.True(t, p.IsPlayer())
	assert.False(t, n.IsPlayer())
}

func TestCombatant_ApplyDamage(t *testing.T) {
	c := combat.Combatant{Name: "G", MaxHP: 18, CurrentHP: 18, Alive: true}
	c.ApplyDamage(5)
	assert.Equal(t, 13, c.CurrentHP)
	assert.True(t, c.Alive)
	c.ApplyDamage(20)
	assert.Equal(t, 0, c.CurrentHP)
	assert.False(t, c.Alive)
}

func TestCombatant_ApplyDamage_ExactlyZeroKills(t *testing.T) {
	c := combat.Combatant{MaxHP: 7, CurrentHP: 7, Alive: true}
	c.ApplyDamage(7)
	assert.Equal(t, 0, c.CurrentHP)
	assert.False(t, c.Alive)
}

func TestCombatant_Property_DamageNeverBelowZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(rt, "max_hp")
		dmg := rapid.IntRange(0, 500).Draw(rt, "dmg")
		c := combat.Combatant{MaxHP: maxHP, CurrentHP: maxHP, Alive: true}
		c.ApplyDamage(dmg)
		assert.GreaterOrEqual(rt, c.CurrentHP, 0)
		assert.Equal(rt, c.CurrentHP > 0, c.Alive)
	})
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "player", combat.RolePlayer.String())
	assert.Equal(t, "enemy", combat.RoleEnemy.String())
	assert.Equal(t, "INITIATIVE", combat.PhaseInitiative.String())
	assert.Equal(t, "PLAYER_TURN", combat.PhasePlayerTurn.String())
	assert.Equal(t, "ENEMY_TURN", combat.PhaseEnemyTurn.String())
	assert.Equal(t, "RESOLUTION", combat.PhaseResolution.String())
	assert.Equal(t, "UNKNOWN", combat.Phase(9).String())
}
