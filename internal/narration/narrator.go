// Package narration turns resolved turns into player-facing prose.
//
// The game core never calls a narrator; the turn loop hands it the pacing
// context and combat log after each turn.
package narration

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/config"
	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
)

// Context is everything a narrator may draw on for one turn.
type Context struct {
	// Character is the one-line character summary.
	Character string
	// Quest is the active quest title, empty when none.
	Quest   string
	Pacing  pacing.Context
	Closure pacing.ClosureStatus
	// CombatLog holds the combat lines produced this turn.
	CombatLog []string
	// Outcome is "victory", "defeat", "fled" or empty.
	Outcome string
}

// Narrator renders one turn as prose.
type Narrator interface {
	Respond(ctx context.Context, action string, nc Context) (string, error)
}

// Prompt renders the turn as the user message sent to an LLM narrator.
func Prompt(action string, nc Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Character: %s\n", nc.Character)
	if nc.Quest != "" {
		fmt.Fprintf(&b, "Quest: %s (%.0f%% complete)\n", nc.Quest, nc.Pacing.QuestProgress*100)
	}
	fmt.Fprintf(&b, "Pacing: %s\n", nc.Pacing)
	if len(nc.CombatLog) > 0 {
		b.WriteString("Combat this turn:\n")
		for _, line := range nc.CombatLog {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	if nc.Outcome != "" {
		fmt.Fprintf(&b, "Combat outcome: %s\n", nc.Outcome)
	}
	if nc.Closure.Triggered {
		fmt.Fprintf(&b, "The adventure ends now (%s). Write the epilogue.\n", nc.Closure.Reason)
	}
	fmt.Fprintf(&b, "Player action: %s\n", action)
	return b.String()
}

// New builds the narrator selected by cfg.Provider.
//
// Precondition: cfg has passed config.Validate.
func New(cfg config.NarratorConfig, logger *zap.Logger) (Narrator, error) {
	switch cfg.Provider {
	case "static":
		return StaticNarrator{}, nil
	case "anthropic":
		primary, err := NewAnthropicNarrator(cfg)
		if err != nil {
			return nil, err
		}
		return WithFallback(primary, StaticNarrator{}, logger), nil
	default:
		return nil, fmt.Errorf("unknown narrator provider %q", cfg.Provider)
	}
}

type fallbackNarrator struct {
	primary  Narrator
	fallback Narrator
	logger   *zap.Logger
}

// WithFallback returns a Narrator that answers with fallback whenever primary
// fails, so a provider outage never blocks a turn.
func WithFallback(primary, fallback Narrator, logger *zap.Logger) Narrator {
	return &fallbackNarrator{primary: primary, fallback: fallback, logger: logger}
}

func (f *fallbackNarrator) Respond(ctx context.Context, action string, nc Context) (string, error) {
	text, err := f.primary.Respond(ctx, action, nc)
	if err == nil {
		return text, nil
	}
	f.logger.Warn("narrator failed, using fallback", zap.Error(err))
	return f.fallback.Respond(ctx, action, nc)
}
