package cli

import (
	"fmt"
	"io"

	"github.com/andy/rebancariza/internal/app"
	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/view"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and delete clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")

		filter := app.SetFilter{Search: search}
		if status != "" {
			s, err := domain.ParseStatus(status)
			if err != nil {
				return err
			}
			filter.Status = s
		}
		res, err := appInstance.Dispatch(cmd.Context(), filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rows := res.Dashboard.Rows
		if len(rows) == 0 {
			if len(res.Dashboard.Clients) == 0 {
				fmt.Fprintln(out, "No clients yet. Add one with 'rebancariza clients add' or load samples with 'rebancariza clients seed'.")
			} else {
				fmt.Fprintln(out, "No clients match the filter")
			}
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-36s %-12s %-28s %-11s %-11s %-13s %-10s\n",
			"ID", "DNI", "Name", "Phone", "Payment", "Monthly Fee", "Status")
		fmt.Fprintln(out, "-----------------------------------------------------------------------------------------------------------------------------")

		for _, r := range rows {
			fmt.Fprintf(out, "%-36s %-12s %-28s %-11s %-11s %13s %-10s\n",
				r.ID,
				truncate(r.DNI, 12),
				truncate(r.Name, 28),
				truncate(r.Phone, 11),
				r.PaymentDate,
				r.MonthlyFee,
				r.StatusLabel,
			)
		}

		fmt.Fprintf(out, "\nShowing %d of %d client(s)\n", len(rows), len(res.Dashboard.Clients))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appInstance.Clients.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printClient(cmd.OutOrStdout(), client, appInstance.Format)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Long: `Add a new client. Both dates default to today and the status to active.

Example:
  rebancariza clients add --dni 12345678 --name "Juan Pérez" --phone 987654321 \
    --payment-date 2024-02-15 --fee 150`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := service.NewClientForm(appInstance.Now())
		applyFormFlags(cmd, &form)

		res, err := appInstance.Dispatch(cmd.Context(), app.CreateClient{Form: form})
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client created: %s (ID: %s)\n", res.Client.Name, res.Client.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  Monthly Fee: %s\n", view.FormatMoney(res.Client.MonthlyFee, res.Dashboard.Format.CurrencySymbol))
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing client",
	Long:  `Edit an existing client. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		res, err := appInstance.Dispatch(ctx, app.BeginEdit{ID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		form := res.Form
		applyFormFlags(cmd, &form)

		res, err = appInstance.Dispatch(ctx, app.UpdateClient{ID: args[0], Form: form})
		if err != nil {
			appInstance.Dispatch(ctx, app.CancelEdit{})
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated: %s\n", res.Client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := appInstance.Clients.Get(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd, fmt.Sprintf("Delete client %s?", client.Name)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if _, err := appInstance.Dispatch(ctx, app.DeleteClient{ID: client.ID}); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

var clientsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load three sample clients into an empty roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := appInstance.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to seed clients: %w", err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Roster is not empty, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Loaded %d sample client(s)\n", n)
		return nil
	},
}

// formFlags maps each flag to the form field it sets
var formFlags = []struct {
	name  string
	usage string
	field func(*service.ClientForm) *string
}{
	{"dni", "DNI or RUC", func(f *service.ClientForm) *string { return &f.DNI }},
	{"name", "Full name", func(f *service.ClientForm) *string { return &f.Name }},
	{"phone", "Phone number", func(f *service.ClientForm) *string { return &f.Phone }},
	{"description", "Service description", func(f *service.ClientForm) *string { return &f.Description }},
	{"management-date", "Management date (YYYY-MM-DD)", func(f *service.ClientForm) *string { return &f.ManagementDate }},
	{"payment-date", "Payment date (YYYY-MM-DD)", func(f *service.ClientForm) *string { return &f.PaymentDate }},
	{"fee", "Monthly fee", func(f *service.ClientForm) *string { return &f.MonthlyFee }},
	{"status", "active or delinquent", func(f *service.ClientForm) *string { return &f.Status }},
}

func addFormFlags(cmd *cobra.Command) {
	for _, f := range formFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
}

// applyFormFlags overwrites the form fields whose flags were given
func applyFormFlags(cmd *cobra.Command, form *service.ClientForm) {
	for _, f := range formFlags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetString(f.name)
			*f.field(form) = v
		}
	}
}

func printClient(w io.Writer, c *domain.Client, f view.Format) {
	description := c.Description
	if description == "" {
		description = "N/A"
	}
	fmt.Fprintf(w, "%s\n", c.Name)
	fmt.Fprintf(w, "  ID:              %s\n", c.ID)
	fmt.Fprintf(w, "  DNI:             %s\n", c.DNI)
	fmt.Fprintf(w, "  Phone:           %s\n", c.Phone)
	fmt.Fprintf(w, "  Description:     %s\n", description)
	fmt.Fprintf(w, "  Management date: %s\n", c.ManagementDate.Format(f.DateLayout))
	fmt.Fprintf(w, "  Payment date:    %s\n", c.PaymentDate.Format(f.DateLayout))
	fmt.Fprintf(w, "  Monthly fee:     %s\n", view.FormatMoney(c.MonthlyFee, f.CurrencySymbol))
	fmt.Fprintf(w, "  Status:          %s\n", c.Status.Label())
	fmt.Fprintf(w, "  Created:         %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsSeedCmd)

	// List flags
	clientsListCmd.Flags().String("search", "", "Match name, phone, DNI or description")
	clientsListCmd.Flags().String("status", "", "Only clients with this status (active, delinquent)")

	addFormFlags(clientsAddCmd)
	addFormFlags(clientsEditCmd)

	clientsDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
