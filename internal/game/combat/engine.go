package combat

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/dice"
	"github.com/cory-johannsen/taleweaver/internal/game/npc"
)

// Roller is the subset of *dice.Roller the engine rolls through.
type Roller interface {
	Roll(expr dice.Expression) dice.RollResult
	RollExpr(notation string) (dice.RollResult, error)
	RollAdvantage() dice.RollResult
	RollDisadvantage() dice.RollResult
}

var d20 = dice.MustParse("1d20")

// Engine resolves encounters against an enemy registry. It holds no
// per-encounter state; every State it returns belongs to the caller.
type Engine struct {
	registry *npc.Registry
	roller   Roller
	logger   *zap.Logger
}

// NewEngine creates a combat Engine.
//
// Precondition: registry, roller and logger must be non-nil.
func NewEngine(registry *npc.Registry, roller Roller, logger *zap.Logger) *Engine {
	return &Engine{registry: registry, roller: roller, logger: logger}
}

// StartCombat builds a one-on-one encounter between c and the enemy
// registered under enemyKey and rolls initiative.
//
// The player's AC is 10 + DEX modifier. The player rolls 1d20 + DEX modifier
// for initiative and the enemy rolls 1d20 + 0. TurnOrder is sorted by
// initiative descending; ties keep player-first insertion order.
//
// Precondition: c must be non-nil.
// Postcondition: Returns an active State at Round 1 in PLAYER_TURN or ENEMY_TURN
// with exactly two combatants, or an error wrapping npc.ErrUnknownEnemyType.
func (e *Engine) StartCombat(c *character.Character, enemyKey string) (*State, []InitiativeResult, error) {
	tmpl, err := e.registry.Lookup(enemyKey)
	if err != nil {
		return nil, nil, err
	}

	dexMod := c.Abilities.DexMod()
	player := &Combatant{
		ID:        PlayerID,
		Name:      c.Name,
		Role:      RolePlayer,
		CurrentHP: max(0, min(c.CurrentHP, c.MaxHP)),
		MaxHP:     c.MaxHP,
		AC:        10 + dexMod,
	}
	player.Alive = player.CurrentHP > 0
	enemy := &Combatant{
		ID:        EnemyID,
		Name:      tmpl.Name,
		Role:      RoleEnemy,
		CurrentHP: tmpl.MaxHP,
		MaxHP:     tmpl.MaxHP,
		AC:        tmpl.AC,
		Alive:     true,
	}

	s := &State{
		Active:     true,
		Phase:      PhaseInitiative,
		Round:      1,
		Combatants: []*Combatant{player, enemy},
		Template:   tmpl,
	}
	s.logf("Combat begins! %s faces a %s. %s", c.Name, tmpl.Name, tmpl.Description)

	results := e.RollInitiative(s.Combatants, map[string]int{PlayerID: dexMod})
	for _, r := range results {
		cbt := s.Combatant(r.ID)
		cbt.Initiative = r.Total
		s.logf("%s rolls initiative: %d%+d = %d", cbt.Name, r.Roll, r.Modifier, r.Total)
	}

	ordered := make([]InitiativeResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Total > ordered[j].Total })
	s.TurnOrder = make([]string, len(ordered))
	for i, r := range ordered {
		s.TurnOrder[i] = r.ID
	}
	s.Phase = phaseFor(s.Current())

	e.logger.Info("combat started",
		zap.String("player", c.Name),
		zap.String("enemy", tmpl.ID),
		zap.Strings("turn_order", s.TurnOrder),
		zap.Stringer("phase", s.Phase),
	)
	return s, results, nil
}

// StartCombatOrDefault calls StartCombat and, when enemyKey is unknown,
// retries once with fallback.
//
// Postcondition: Returns the State and the key actually used, or the error
// from the fallback attempt.
func (e *Engine) StartCombatOrDefault(c *character.Character, enemyKey, fallback string) (*State, []InitiativeResult, string, error) {
	s, results, err := e.StartCombat(c, enemyKey)
	if err == nil {
		return s, results, enemyKey, nil
	}
	e.logger.Warn("unknown enemy type, using fallback",
		zap.String("requested", enemyKey),
		zap.String("fallback", fallback),
		zap.Error(err),
	)
	s, results, err = e.StartCombat(c, fallback)
	if err != nil {
		return nil, nil, "", fmt.Errorf("starting combat with fallback enemy: %w", err)
	}
	return s, results, fallback, nil
}
