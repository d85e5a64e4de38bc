package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags "-X github.com/abhisek/drill/cmd.version=..." at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the drill version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "drill %s\n", version)
	},
}
