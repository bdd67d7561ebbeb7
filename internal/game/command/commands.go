// Package command provides the player command registry, parser, and built-in
// command definitions for the adventure loop.
package command

import (
	"fmt"
	"sort"
	"strings"
)

// Categories for organizing commands.
const (
	CategoryCombat = "combat"
	CategoryQuest  = "quest"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to turn-loop actions. System handlers
// are served by the front end and never spend a turn.
const (
	HandlerFight    = "fight"
	HandlerAttack   = "attack"
	HandlerDefend   = "defend"
	HandlerFlee     = "flee"
	HandlerComplete = "complete"
	HandlerHelp     = "help"
	HandlerQuit     = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "fight [enemy]".
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (combat, quest, system).
	Category string
	// Handler maps to the turn-loop action.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Combat commands
		{Name: "fight", Aliases: []string{"engage"}, Usage: "fight [enemy]", Help: "Start a fight with an enemy type", Category: CategoryCombat, Handler: HandlerFight},
		{Name: "attack", Aliases: []string{"att", "kill", "strike"}, Usage: "attack", Help: "Attack with your class weapon", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "defend", Aliases: []string{"block", "guard"}, Usage: "defend", Help: "Impose disadvantage on the next enemy attack", Category: CategoryCombat, Handler: HandlerDefend},
		{Name: "flee", Aliases: []string{"run"}, Usage: "flee", Help: "Attempt to escape (1d20 + DEX vs DC 12)", Category: CategoryCombat, Handler: HandlerFlee},

		// Quest commands
		{Name: "complete", Aliases: []string{"done"}, Usage: "complete <n>", Help: "Mark quest objective n complete", Category: CategoryQuest, Handler: HandlerComplete},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Help: "Leave the adventure", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsSystem reports whether cmd is handled outside the turn loop.
func (c *Command) IsSystem() bool {
	return c.Category == CategorySystem
}

// HelpText renders every command grouped by category, categories sorted.
func (r *Registry) HelpText() string {
	cats := r.CommandsByCategory()
	names := make([]string, 0, len(cats))
	for name := range cats {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s:\n", name)
		for _, cmd := range cats[name] {
			fmt.Fprintf(&b, "  %-16s %s\n", cmd.Usage, cmd.Help)
		}
	}
	b.WriteString("Anything else is narrated.")
	return b.String()
}
