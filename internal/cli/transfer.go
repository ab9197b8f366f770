package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the roster as JSON",
	Long: `Write the roster as a JSON array, to stdout or to a file.
The format is the same one the browser version keeps in localStorage.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return appInstance.ExportJSON(cmd.Context(), cmd.OutOrStdout())
		}

		f, err := os.OpenFile(args[0], os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		if err := appInstance.ExportJSON(cmd.Context(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d client(s) to %s\n", len(appInstance.Dashboard().Clients), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load clients from a JSON file",
	Long: `Load clients from a JSON array, such as a localStorage dump of the
browser version. Records are appended unless --replace is given.
Records that fail validation are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		replace, _ := cmd.Flags().GetBool("replace")
		n, err := appInstance.ImportJSON(cmd.Context(), f, replace)
		if err != nil {
			return fmt.Errorf("failed to import clients: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d client(s)\n", n)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "Replace the roster instead of appending")
}
