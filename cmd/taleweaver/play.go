package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/taleweaver/internal/adventure"
	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/combat"
	"github.com/cory-johannsen/taleweaver/internal/game/command"
	"github.com/cory-johannsen/taleweaver/internal/game/session"
	"github.com/cory-johannsen/taleweaver/internal/narration"
)

func newPlayCmd(configPath *string) *cobra.Command {
	var (
		name  string
		class string
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive adventure on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seedOverride *int64
			if cmd.Flags().Changed("seed") {
				seedOverride = &seed
			}
			a, err := newApp(*configPath, seedOverride)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			hero, err := character.Build(name, class, nil)
			if err != nil {
				return err
			}
			q, err := a.loadQuest()
			if err != nil {
				return err
			}
			narrator, err := narration.New(a.cfg.Narrator, a.logger)
			if err != nil {
				return err
			}

			eng := adventure.NewEngine(
				session.NewManager(a.logger),
				combat.NewEngine(a.registry, a.roller, a.logger),
				narrator,
				adventure.Options{MaxTurns: a.cfg.Adventure.MaxTurns, DefaultEnemy: a.cfg.Adventure.DefaultEnemy},
				a.logger,
			)
			id := eng.Start(hero, q)

			out := cmd.OutOrStdout()
			commands := command.DefaultRegistry()
			fmt.Fprintf(out, "%s\nQuest: %s\n%s\n%s\n", hero.CombatSummary(), q.Title, q.Description, commands.HelpText())
			return playLoop(cmd, eng, commands, id, cmd.InOrStdin(), out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "Wanderer", "character name")
	cmd.Flags().StringVar(&class, "class", character.ClassFighter, "character class: "+strings.Join(character.Classes(), ", "))
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed the dice for a reproducible game")
	return cmd
}

func playLoop(cmd *cobra.Command, eng *adventure.Engine, commands *command.Registry, id string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if c, ok := commands.Resolve(command.Parse(line).Command); ok && c.IsSystem() {
			if c.Handler == command.HandlerQuit {
				fmt.Fprintln(out, "Farewell.")
				return nil
			}
			fmt.Fprintln(out, commands.HelpText())
			continue
		}

		res, err := eng.HandleAction(cmd.Context(), id, line)
		switch {
		case errors.Is(err, adventure.ErrInvalidAction):
			fmt.Fprintln(out, err)
			continue
		case err != nil:
			return err
		}
		fmt.Fprintln(out, res.Narration)
		if res.Finished {
			fmt.Fprintln(out, "The End.")
			return nil
		}
	}
}
