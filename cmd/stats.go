package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.StatsPlaceholder)
	},
}
