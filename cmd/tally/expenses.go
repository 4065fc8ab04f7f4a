package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"tally/internal/cli"
	"tally/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and review expenses",
		Long:  `Add expenses, list what you've spent, and total spending by category.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(totalExpensesCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add a new expense",
		Long:  `Record an expense with a name, amount, and category.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			expense, err := model.NewExpense(args[0], category, amount)
			if err != nil {
				return err
			}

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to save expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %q: %.2f (%s)", expense.Name, expense.Amount, expense.Category)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "other", "Expense category")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `Display recorded expenses, optionally filtered by category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var expenses []model.Expense
			if category != "" {
				expenses, err = store.GetExpensesByCategory(ctx, category)
			} else {
				expenses, err = store.ListExpenses(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'tally expenses add' to record one."))
				return nil
			}

			// Create table writer
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			// Header
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Name"),
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 30),
				strings.Repeat("-", 15),
				strings.Repeat("-", 10))

			for _, e := range expenses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
					e.CreatedAt.Format("2006-01-02"), e.Name, e.Category, e.Amount)
			}

			total := model.TotalSpending(expenses, "")
			fmt.Fprintf(w, "\t\t%s\t%.2f\n", cli.BoldStyle.Render("Total"), total)

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show expenses in this category")

	return cmd
}

func totalExpensesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show total spending",
		Long:  `Sum recorded expenses, optionally restricted to one category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			total := model.TotalSpending(expenses, category)
			if category != "" {
				fmt.Printf("Total spent on %s: %s\n", category, cli.BoldStyle.Render(fmt.Sprintf("%.2f", total)))
			} else {
				fmt.Printf("Total spent: %s\n", cli.BoldStyle.Render(fmt.Sprintf("%.2f", total)))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only total expenses in this category")

	return cmd
}
