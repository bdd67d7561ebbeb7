package session_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
	"github.com/cory-johannsen/taleweaver/internal/game/quest"
	"github.com/cory-johannsen/taleweaver/internal/game/session"
)

func hero() *character.Character {
	return &character.Character{Name: "Hero", Class: "fighter", Level: 1, MaxHP: 12, CurrentHP: 12}
}

func TestNewGameState_Defaults(t *testing.T) {
	g := session.NewGameState("id", hero(), nil, 0)
	assert.Equal(t, pacing.DefaultMaxTurns, g.MaxTurns)
	assert.Equal(t, 0, g.AdventureTurn)
	assert.Equal(t, pacing.PhaseSetup, g.Phase)
	assert.False(t, g.InCombat())
	assert.False(t, g.Finished)
}

func TestGameState_AdvanceTurn_DerivesPhase(t *testing.T) {
	g := session.NewGameState("id", hero(), nil, 50)
	for i := 0; i < 6; i++ {
		g.AdvanceTurn()
	}
	assert.Equal(t, 6, g.AdventureTurn)
	assert.Equal(t, pacing.PhaseRisingAction, g.Phase)
}

func TestGameState_AdvanceTurn_Property_Clamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxTurns := rapid.IntRange(1, 60).Draw(rt, "max_turns")
		steps := rapid.IntRange(0, 120).Draw(rt, "steps")
		g := session.NewGameState("id", hero(), nil, maxTurns)
		for i := 0; i < steps; i++ {
			g.AdvanceTurn()
		}
		assert.Equal(rt, min(steps, maxTurns), g.AdventureTurn)
		assert.Equal(rt, pacing.PhaseForTurn(g.AdventureTurn), g.Phase)
	})
}

func TestGameState_SetTurn_Clamps(t *testing.T) {
	g := session.NewGameState("id", hero(), nil, 50)
	g.SetTurn(-3)
	assert.Equal(t, 0, g.AdventureTurn)
	g.SetTurn(99)
	assert.Equal(t, 50, g.AdventureTurn)
	assert.Equal(t, pacing.PhaseDenouement, g.Phase)
}

func TestGameState_SetPhase_OverrideUntilNextTurn(t *testing.T) {
	g := session.NewGameState("id", hero(), nil, 50)
	g.SetPhase(pacing.PhaseClimax)
	assert.Equal(t, pacing.PhaseClimax, g.Snapshot().Phase)
	g.AdvanceTurn()
	assert.Equal(t, pacing.PhaseSetup, g.Phase)
}

func TestGameState_Snapshot(t *testing.T) {
	q := quest.Default()
	g := session.NewGameState("id", hero(), q, 40)
	g.SetTurn(7)
	s := g.Snapshot()
	assert.Equal(t, pacing.Snapshot{Turn: 7, MaxTurns: 40, Phase: pacing.PhaseRisingAction, Quest: q}, s)
}

func TestManager_CreateAndWith(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	id := m.Create(hero(), quest.Default(), 50)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, []string{id}, m.IDs())

	err = m.With(id, func(g *session.GameState) error {
		assert.Equal(t, id, g.ID)
		assert.Equal(t, "Hero", g.Character.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_WithPropagatesError(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	id := m.Create(hero(), nil, 50)
	boom := errors.New("boom")
	assert.ErrorIs(t, m.With(id, func(*session.GameState) error { return boom }), boom)
}

func TestManager_UnknownSession(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	err := m.With("nope", func(*session.GameState) error { return nil })
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, m.Remove("nope"), session.ErrSessionNotFound)
}

func TestManager_Remove(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	id := m.Create(hero(), nil, 50)
	require.NoError(t, m.Remove(id))
	assert.Zero(t, m.Count())
	assert.ErrorIs(t, m.With(id, func(*session.GameState) error { return nil }), session.ErrSessionNotFound)
}

func TestManager_WithSerializesPerSession(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	id := m.Create(hero(), nil, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(id, func(g *session.GameState) error {
				g.AdvanceTurn()
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With(id, func(g *session.GameState) error {
		assert.Equal(t, 200, g.AdventureTurn)
		return nil
	}))
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := session.NewManager(zap.NewNop())
	a := m.Create(hero(), nil, 50)
	b := m.Create(hero(), nil, 50)
	require.NotEqual(t, a, b)

	require.NoError(t, m.With(a, func(g *session.GameState) error { g.AdvanceTurn(); return nil }))
	require.NoError(t, m.With(b, func(g *session.GameState) error {
		assert.Zero(t, g.AdventureTurn)
		return nil
	}))
}
