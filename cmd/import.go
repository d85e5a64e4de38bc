package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Import a set from a caret-delimited file",
	Long: `Import a set from a text file with one "term^definition" pair per line.

The file has no header row. A line with any other number of fields fails
the whole import and leaves the database unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		overwrite, _ := cmd.Flags().GetBool("overwrite")
		set, err := d.importer.ImportFile(cmd.Context(), args[0], args[1], overwrite)
		if errors.Is(err, importer.ErrAlreadyExists) {
			return fmt.Errorf("%w (use --overwrite to replace it)", err)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set '%s' imported successfully!\n", set.Name)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("overwrite", false, "Replace the set if it already exists, discarding its progress")
}
