package cli

import (
	"fmt"
	"io"

	"github.com/andy/rebancariza/internal/app"
	"github.com/andy/rebancariza/internal/chart"
	"github.com/andy/rebancariza/internal/view"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show stats and payment alerts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := appInstance.Dashboard()
		out := cmd.OutOrStdout()

		for _, m := range d.Metrics {
			fmt.Fprintf(out, "%-16s %s\n", m.Label+":", m.Value)
		}
		fmt.Fprintln(out)

		printAlerts(out, "Overdue payments", d.Overdue)
		printAlerts(out, fmt.Sprintf("Due within %d days", d.DueSoonDays), d.DueSoon)
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plot the projected balance",
	Long: `Plot the projected balance over the last 7, 30 or 90 days.
Without --days the configured window is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := appInstance.Dashboard()
		if cmd.Flags().Changed("days") {
			days, _ := cmd.Flags().GetInt("days")
			res, err := appInstance.Dispatch(cmd.Context(), app.ChangeChartWindow{Days: days})
			if err != nil {
				return err
			}
			d = res.Dashboard
		}
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Balance, last %d days\n\n", d.State.ChartWindow)
		fmt.Fprintln(out, chart.Line(d.Chart, chart.Options{
			Width:  width,
			Height: height,
			Symbol: d.Format.CurrencySymbol,
		}))
		return nil
	},
}

func printAlerts(w io.Writer, title string, rows []view.AlertRow) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-28s %-30s %s\n", truncate(r.Name, 28), r.Detail, r.Label)
	}
	fmt.Fprintln(w)
}

func init() {
	chartCmd.Flags().Int("days", 30, "Window in days: 7, 30 or 90")
	chartCmd.Flags().Int("width", 72, "Chart width in columns")
	chartCmd.Flags().Int("height", 12, "Chart height in rows")
}
