package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/store"
)

var directionCmd = &cobra.Command{
	Use:       "direction [term-to-definition|definition-to-term]",
	Short:     "Show or set the learning direction",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"term-to-definition", "definition-to-term"},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		settings := d.store.SettingsRepo()
		if len(args) == 1 {
			dir, err := store.ParseDirection(args[0])
			if err != nil {
				return err
			}
			if err := settings.SetLearningDirection(ctx, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Learning direction set to: %s\n", app.DescribeDirection(dir))
			return nil
		}

		dir, err := settings.LearningDirection(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", app.DescribeDirection(dir), dir)
		return nil
	},
}
