package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRollCmd(configPath *string) *cobra.Command {
	var advantage, disadvantage bool
	cmd := &cobra.Command{
		Use:   "roll [notation...]",
		Short: "Roll dice, e.g. 2d6+3",
		Example: `  taleweaver roll 1d20 2d6+3
  taleweaver roll --advantage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if advantage && disadvantage {
				return errors.New("--advantage and --disadvantage are mutually exclusive")
			}
			if len(args) == 0 && !advantage && !disadvantage {
				return errors.New("at least one dice notation is required")
			}

			a, err := newApp(*configPath, nil)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			out := cmd.OutOrStdout()
			switch {
			case advantage:
				fmt.Fprintln(out, a.roller.RollAdvantage())
			case disadvantage:
				fmt.Fprintln(out, a.roller.RollDisadvantage())
			}
			for _, notation := range args {
				r, err := a.roller.RollExpr(notation)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&advantage, "advantage", false, "roll 2d20 and keep the higher")
	cmd.Flags().BoolVar(&disadvantage, "disadvantage", false, "roll 2d20 and keep the lower")
	return cmd
}
