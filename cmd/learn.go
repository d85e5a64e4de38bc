package cmd

import (
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn [set]",
	Short: "Drill a set until every term is mastered",
	Long: `Drill a set until every term is mastered. Progress is saved after every
answer; type "exit" to stop and resume later.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if len(args) == 1 {
			return d.app.LearnSet(cmd.Context(), args[0])
		}
		return d.app.Learn(cmd.Context())
	},
}
