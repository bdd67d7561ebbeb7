// Package adventure runs the per-turn loop: it advances the turn counter,
// routes combat verbs into the combat engine, evaluates pacing and closure,
// and asks the narrator for prose.
package adventure

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/combat"
	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
	"github.com/cory-johannsen/taleweaver/internal/game/quest"
	"github.com/cory-johannsen/taleweaver/internal/game/session"
	"github.com/cory-johannsen/taleweaver/internal/narration"
)

var (
	// ErrAdventureOver is returned for actions on a finished adventure.
	ErrAdventureOver = errors.New("adventure is over")
	// ErrInvalidAction is returned for actions rejected before the turn is spent.
	ErrInvalidAction = errors.New("invalid action")
)

// Outcome is how an encounter ended this turn.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// TurnResult is everything one resolved turn produced.
type TurnResult struct {
	SessionID string
	Pacing    pacing.Context
	Closure   pacing.ClosureStatus
	// CombatLog holds the combat lines appended this turn.
	CombatLog []string
	InCombat  bool
	Outcome   Outcome
	Narration string
	// Finished is true once the adventure has closed or the player has fallen.
	Finished bool
}

// Options tunes new adventures.
type Options struct {
	MaxTurns     int
	DefaultEnemy string
}

// Engine drives adventures stored in a session.Manager.
type Engine struct {
	sessions *session.Manager
	combat   *combat.Engine
	narrator narration.Narrator
	opts     Options
	logger   *zap.Logger
}

// NewEngine wires the turn loop.
//
// Precondition: every argument must be non-nil.
func NewEngine(sessions *session.Manager, combatEngine *combat.Engine, narrator narration.Narrator, opts Options, logger *zap.Logger) *Engine {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = pacing.DefaultMaxTurns
	}
	return &Engine{
		sessions: sessions,
		combat:   combatEngine,
		narrator: narrator,
		opts:     opts,
		logger:   logger,
	}
}

// Start opens an adventure for c. The quest is copied so that sessions never
// share objective state.
//
// Postcondition: Returns the new session id.
func (e *Engine) Start(c *character.Character, q *quest.Quest) string {
	return e.sessions.Create(c, q.Clone(), e.opts.MaxTurns)
}

// turn is the part of a TurnResult produced under the session lock, plus
// what the narrator needs.
type turn struct {
	result TurnResult
	nc     narration.Context
}

// HandleAction resolves one player turn.
//
// The turn counter advances first. Combat verbs go to the combat engine and,
// if the encounter continues, the enemy answers in the same turn. Pacing and
// closure are evaluated after the action; a triggered closure or a defeat
// finishes the adventure. The narrator runs outside the session lock.
//
// Postcondition: Returns ErrAdventureOver for a finished adventure,
// ErrInvalidAction (turn not spent) for empty text or a bad objective number,
// or session.ErrSessionNotFound for unknown ids.
func (e *Engine) HandleAction(ctx context.Context, sessionID, raw string) (TurnResult, error) {
	action := ParseAction(raw)
	if action.Raw == "" {
		return TurnResult{}, fmt.Errorf("%w: empty action", ErrInvalidAction)
	}

	var t turn
	err := e.sessions.With(sessionID, func(st *session.GameState) error {
		var err error
		t, err = e.resolve(st, action)
		return err
	})
	if err != nil {
		return TurnResult{}, err
	}

	text, err := e.narrator.Respond(ctx, action.Raw, t.nc)
	if err != nil {
		// The narrator is optional decoration; the turn has already happened.
		e.logger.Warn("narration failed", zap.String("session_id", sessionID), zap.Error(err))
		text, _ = narration.StaticNarrator{}.Respond(ctx, action.Raw, t.nc)
	}
	t.result.Narration = text
	return t.result, nil
}

func (e *Engine) resolve(st *session.GameState, action Action) (turn, error) {
	if st.Finished {
		return turn{}, fmt.Errorf("session %q: %w", st.ID, ErrAdventureOver)
	}
	if action.Verb == VerbComplete {
		if err := validateObjective(st, action); err != nil {
			return turn{}, err
		}
	}

	st.AdvanceTurn()

	var (
		lines   []string
		outcome Outcome
		err     error
	)
	switch action.Verb {
	case VerbComplete:
		i, _ := action.objectiveIndex()
		// Index validated above.
		_ = st.Quest.Complete(i)
	case VerbFight, VerbAttack, VerbDefend, VerbFlee:
		lines, outcome, err = e.combatTurn(st, action)
		if err != nil {
			return turn{}, err
		}
	}

	ctxt := pacing.BuildContext(st.Snapshot())
	closure := pacing.CheckClosure(st.Snapshot())
	if outcome == OutcomeDefeat {
		st.Finished = true
	}
	if closure.Triggered {
		st.Finished = true
		st.Closure = closure.Reason
		e.logger.Info("adventure closed",
			zap.String("session_id", st.ID),
			zap.String("reason", string(closure.Reason)),
			zap.Int("turn", st.AdventureTurn),
		)
	}

	e.logger.Info("turn resolved",
		zap.String("session_id", st.ID),
		zap.Int("turn", st.AdventureTurn),
		zap.String("phase", string(st.Phase)),
		zap.String("verb", string(action.Verb)),
		zap.String("outcome", string(outcome)),
	)

	res := TurnResult{
		SessionID: st.ID,
		Pacing:    ctxt,
		Closure:   closure,
		CombatLog: lines,
		InCombat:  st.InCombat(),
		Outcome:   outcome,
		Finished:  st.Finished,
	}
	nc := narration.Context{
		Character: st.Character.CombatSummary(),
		Pacing:    ctxt,
		Closure:   closure,
		CombatLog: lines,
		Outcome:   string(outcome),
	}
	if st.Quest != nil {
		nc.Quest = st.Quest.Title
	}
	return turn{result: res, nc: nc}, nil
}

func validateObjective(st *session.GameState, action Action) error {
	if st.Quest == nil {
		return fmt.Errorf("%w: no active quest", ErrInvalidAction)
	}
	i, ok := action.objectiveIndex()
	if !ok || i < 0 || i >= len(st.Quest.Objectives) {
		return fmt.Errorf("%w: objective must be a number in [1, %d], got %q", ErrInvalidAction, len(st.Quest.Objectives), action.Arg)
	}
	return nil
}

// combatTurn runs one exchange and returns the combat lines it appended.
func (e *Engine) combatTurn(st *session.GameState, action Action) ([]string, Outcome, error) {
	if !st.InCombat() {
		if action.Verb != VerbFight && action.Verb != VerbAttack {
			// Nothing to defend against or flee from.
			return nil, OutcomeNone, nil
		}
		return e.openCombat(st, action.Arg)
	}

	s := st.Combat
	start := len(s.Log)
	var err error
	switch action.Verb {
	case VerbFight, VerbAttack:
		_, err = e.combat.ExecutePlayerAttack(s, st.Character)
	case VerbDefend:
		_, err = e.combat.ExecuteDefend(s, st.Character)
	case VerbFlee:
		var fr combat.FleeResult
		fr, err = e.combat.ExecuteFlee(s, st.Character)
		if err == nil && fr.Success {
			e.syncHP(st)
			st.Combat = nil
			return copyLines(s.Log[start:]), OutcomeFled, nil
		}
		// A failed escape spends the exchange: the free attack replaces the
		// enemy's turn.
		if err == nil {
			return e.settle(st, start)
		}
	}
	if err != nil {
		return nil, OutcomeNone, err
	}
	if ended, _ := s.CheckEnd(); !ended {
		s.AdvanceTurn()
		if err := e.enemyTurns(s); err != nil {
			return nil, OutcomeNone, err
		}
	}
	return e.settle(st, start)
}

// openCombat starts an encounter with enemyKey (or the default enemy) and
// lets the enemy act first if it won initiative.
func (e *Engine) openCombat(st *session.GameState, enemyKey string) ([]string, Outcome, error) {
	if enemyKey == "" {
		enemyKey = e.opts.DefaultEnemy
	}
	s, _, _, err := e.combat.StartCombatOrDefault(st.Character, enemyKey, e.opts.DefaultEnemy)
	if err != nil {
		return nil, OutcomeNone, err
	}
	st.Combat = s
	if err := e.enemyTurns(s); err != nil {
		return nil, OutcomeNone, err
	}
	return e.settle(st, 0)
}

// enemyTurns runs enemy attacks until it is the player's turn or the fight
// is decided.
func (e *Engine) enemyTurns(s *combat.State) error {
	for s.Active && s.Phase == combat.PhaseEnemyTurn {
		if _, err := e.combat.ExecuteEnemyTurn(s); err != nil {
			return err
		}
		if ended, _ := s.CheckEnd(); ended {
			return nil
		}
		s.AdvanceTurn()
	}
	return nil
}

// settle closes a decided encounter, writes HP back to the character and
// returns the lines appended since start.
func (e *Engine) settle(st *session.GameState, start int) ([]string, Outcome, error) {
	s := st.Combat
	outcome := OutcomeNone
	if ended, result := s.CheckEnd(); ended {
		s.End(result)
		outcome = Outcome(result)
		st.Combat = nil
		e.logger.Info("combat ended",
			zap.String("session_id", st.ID),
			zap.String("result", string(result)),
			zap.Int("rounds", s.Round),
		)
	}
	e.syncHPFrom(st, s)
	return copyLines(s.Log[start:]), outcome, nil
}

func (e *Engine) syncHP(st *session.GameState) {
	e.syncHPFrom(st, st.Combat)
}

func (e *Engine) syncHPFrom(st *session.GameState, s *combat.State) {
	if p := s.Player(); p != nil {
		st.Character.SetHP(p.CurrentHP)
	}
}

func copyLines(lines []string) []string {
	return append([]string(nil), lines...)
}
