package narration

import (
	"context"
	"fmt"
	"strings"

	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
)

// StaticNarrator renders turns deterministically without any LLM.
type StaticNarrator struct{}

// Respond never fails.
func (StaticNarrator) Respond(_ context.Context, action string, nc Context) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s | turn %d/%d] %s\n", nc.Pacing.Phase, nc.Pacing.CurrentTurn, nc.Pacing.MaxTurns, nc.Pacing.Directive)
	if len(nc.CombatLog) == 0 {
		fmt.Fprintf(&b, "You %s.\n", strings.TrimSpace(action))
	}
	for _, line := range nc.CombatLog {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	switch nc.Outcome {
	case "fled":
		b.WriteString("You leave the fight behind.\n")
	case "victory":
		b.WriteString("The way ahead is clear.\n")
	case "defeat":
		b.WriteString("Darkness takes you. Your adventure ends here.\n")
	}
	if nc.Closure.Triggered {
		b.WriteString(closingLine(nc.Closure.Reason))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func closingLine(reason pacing.ClosureReason) string {
	switch reason {
	case pacing.ClosureQuestComplete:
		return "Your quest is complete. The tale draws to a close."
	case pacing.ClosureHardCap:
		return "Time has run out. The tale draws to a close."
	default:
		return "The tale draws to a close."
	}
}
