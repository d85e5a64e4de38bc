package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/ui/layout"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List sets with their mastery progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		return d.app.PrintSets(cmd.Context(), layout.DefaultWidth)
	},
}
