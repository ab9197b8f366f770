package cli

import (
	"fmt"

	"github.com/andy/rebancariza/internal/app"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the TUI theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), appInstance.State().Theme)
			return nil
		}

		var act app.Action = app.SetTheme{Theme: args[0]}
		if args[0] == "toggle" {
			act = app.ToggleTheme{}
		}
		res, err := appInstance.Dispatch(cmd.Context(), act)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", res.Dashboard.State.Theme)
		return nil
	},
}
