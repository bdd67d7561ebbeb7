package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEnemiesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "enemies",
		Short: "List the enemy types combat can start with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, nil)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tHP\tAC\tATTACK\tDAMAGE")
			for _, t := range a.registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%+d\t%s\n", t.ID, t.Name, t.MaxHP, t.AC, t.AttackBonus, t.DamageDice)
			}
			return w.Flush()
		},
	}
}
