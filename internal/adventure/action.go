package adventure

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/taleweaver/internal/game/command"
)

// Verb is the turn-loop action a command resolves to.
type Verb string

const (
	VerbFight    Verb = command.HandlerFight
	VerbAttack   Verb = command.HandlerAttack
	VerbDefend   Verb = command.HandlerDefend
	VerbFlee     Verb = command.HandlerFlee
	VerbComplete Verb = command.HandlerComplete
	// VerbNarrate is any action the turn loop does not interpret.
	VerbNarrate Verb = ""
)

var commands = command.DefaultRegistry()

// Action is a parsed player action.
type Action struct {
	Raw  string
	Verb Verb
	// Arg is the remainder after the command word, lower-cased.
	Arg string
}

// ParseAction resolves the first word of raw through the command registry.
// Unknown words and system commands parse as VerbNarrate with the whole
// text kept in Raw.
func ParseAction(raw string) Action {
	a := Action{Raw: strings.TrimSpace(raw)}
	p := command.Parse(raw)
	cmd, ok := commands.Resolve(p.Command)
	if !ok || cmd.IsSystem() {
		return a
	}
	a.Verb = Verb(cmd.Handler)
	a.Arg = strings.ToLower(strings.Join(p.Args, " "))
	return a
}

// objectiveIndex parses a 1-based objective number into a 0-based index.
func (a Action) objectiveIndex() (int, bool) {
	n, err := strconv.Atoi(a.Arg)
	if err != nil {
		return 0, false
	}
	return n - 1, true
}
