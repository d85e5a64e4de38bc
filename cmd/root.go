package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "drill",
	Short:         "Flashcard trainer for the terminal",
	Long:          "drill imports term/definition sets and drills them until every term is mastered.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(directionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
