package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/ui"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	apiURL string

	expenseForm ui.ExpenseForm
	dashFrom    string
	dashTo      string
)

var responsiblesCmd = &cobra.Command{
	Use:     "responsibles",
	Aliases: []string{"resp"},
	Short:   "List and manage responsibles",
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List and manage expenses",
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals for a date range (defaults to the current month)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page := ui.NewDashboardPage(newAPIClient())
		page.From, page.To = dashFrom, dashTo
		err := page.Load(cmd.Context())
		fmt.Print(page.View())
		return err
	},
}

func newAPIClient() *client.Client {
	cfg := loadClientConfig(configPath)
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	return client.New(client.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger.LoggerWrapper())
}

// responsiblesAction runs fn against a freshly loaded page and prints it,
// error included.
func responsiblesAction(fn func(ctx context.Context, page *ui.ResponsiblesPage, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		page := ui.NewResponsiblesPage(newAPIClient())
		err := fn(cmd.Context(), page, args)
		fmt.Print(page.View())
		return err
	}
}

func expensesAction(fn func(ctx context.Context, page *ui.ExpensesPage, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		page := ui.NewExpensesPage(newAPIClient(), time.Now)
		err := fn(cmd.Context(), page, args)
		fmt.Print(page.View())
		return err
	}
}

func init() {
	responsiblesCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List responsibles, newest first",
			Args:  cobra.NoArgs,
			RunE: responsiblesAction(func(ctx context.Context, page *ui.ResponsiblesPage, _ []string) error {
				return page.Reload(ctx)
			}),
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Register a responsible",
			Args:  cobra.ExactArgs(1),
			RunE: responsiblesAction(func(ctx context.Context, page *ui.ResponsiblesPage, args []string) error {
				page.Name = args[0]
				return page.Create(ctx)
			}),
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a responsible",
			Args:  cobra.ExactArgs(2),
			RunE: responsiblesAction(func(ctx context.Context, page *ui.ResponsiblesPage, args []string) error {
				return page.Rename(ctx, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete a responsible; its expenses become unassigned",
			Args:  cobra.ExactArgs(1),
			RunE: responsiblesAction(func(ctx context.Context, page *ui.ResponsiblesPage, args []string) error {
				return page.Delete(ctx, args[0])
			}),
		},
	)

	addExpenseCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: expensesAction(func(ctx context.Context, page *ui.ExpensesPage, _ []string) error {
			form := expenseForm
			if form.SpentAt == "" {
				form.SpentAt = page.Form.SpentAt
			}
			page.Form = form
			return page.Create(ctx)
		}),
	}
	addExpenseCmd.Flags().StringVar(&expenseForm.Description, "description", "", "what was bought")
	addExpenseCmd.Flags().StringVar(&expenseForm.Amount, "amount", "", "amount, e.g. 12.50")
	addExpenseCmd.Flags().StringVar(&expenseForm.SpentAt, "date", "", "spent date YYYY-MM-DD (default today)")
	addExpenseCmd.Flags().StringVar(&expenseForm.ResponsibleID, "responsible", "", "responsible id")
	addExpenseCmd.Flags().StringVar(&expenseForm.Status, "status", expense.StatusOpen, "open or paid")

	expensesCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List expenses, most recent first",
			Args:  cobra.NoArgs,
			RunE: expensesAction(func(ctx context.Context, page *ui.ExpensesPage, _ []string) error {
				return page.Reload(ctx)
			}),
		},
		addExpenseCmd,
		&cobra.Command{
			Use:   "pay <id>",
			Short: "Mark an expense as paid",
			Args:  cobra.ExactArgs(1),
			RunE: expensesAction(func(ctx context.Context, page *ui.ExpensesPage, args []string) error {
				return page.SetStatus(ctx, args[0], expense.StatusPaid)
			}),
		},
		&cobra.Command{
			Use:   "reopen <id>",
			Short: "Mark an expense as open again",
			Args:  cobra.ExactArgs(1),
			RunE: expensesAction(func(ctx context.Context, page *ui.ExpensesPage, args []string) error {
				return page.SetStatus(ctx, args[0], expense.StatusOpen)
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete an open expense",
			Args:  cobra.ExactArgs(1),
			RunE: expensesAction(func(ctx context.Context, page *ui.ExpensesPage, args []string) error {
				return page.Delete(ctx, args[0])
			}),
		},
	)

	dashboardCmd.Flags().StringVar(&dashFrom, "from", "", "range start YYYY-MM-DD")
	dashboardCmd.Flags().StringVar(&dashTo, "to", "", "range end YYYY-MM-DD")

	for _, c := range []*cobra.Command{responsiblesCmd, expensesCmd, dashboardCmd} {
		c.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base url (defaults to client.base_url)")
		rootCmd.AddCommand(c)
	}
}
