package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every client and the stored theme",
	Long: `Delete every client and the stored theme from the database.

Examples:
  rebancariza reset          # asks for confirmation
  rebancariza reset --yes    # no questions asked`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd, "This will delete ALL clients. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := appInstance.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All data has been deleted.")
		return nil
	},
}

func confirmPrompt(cmd *cobra.Command, message string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", message)
	return readYes(cmd.InOrStdin())
}

func readYes(r io.Reader) bool {
	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
