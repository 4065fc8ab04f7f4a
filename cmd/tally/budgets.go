package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"tally/internal/cli"
	"tally/internal/model"
	"tally/internal/service"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category budgets",
		Long:  `Set spending limits per category and check how much of each budget is used.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a budget for a category",
		Long:  `Create an active budget limiting spending in a category over a period.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			budget, err := model.NewBudget(args[0], amount, period)
			if err != nil {
				return err
			}

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveBudget(ctx, budget); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %s budget for %q: %.2f (%.2f/day)",
				budget.Period, budget.Category, budget.Amount, budget.DailyEquivalent())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "monthly", "Budget period (daily, weekly, monthly, yearly)")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets",
		Long:  `Display every stored budget, including inactive ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets found. Use 'tally budgets set' to create one."))
				return nil
			}

			// Create table writer
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			// Header
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Period"),
				headerStyle.Render("Per day"),
				headerStyle.Render("Active"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 15),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8),
				strings.Repeat("-", 6))

			for _, b := range budgets {
				active := "yes"
				if !b.IsActive {
					active = cli.SubtleStyle.Render("no")
				}
				fmt.Fprintf(w, "%s\t%.2f\t%s\t%.2f\t%s\n",
					b.Category, b.Amount, b.Period, b.DailyEquivalent(), active)
			}

			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [category]",
		Short: "Show budget usage",
		Long: `Evaluate spending against budgets. With a category argument only that
category is reported; otherwise every category with an active budget is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				budget, err := store.GetActiveBudgetByCategory(ctx, args[0])
				if err != nil {
					return err
				}
				if budget == nil {
					fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No active budget for %q.", args[0])))
					return nil
				}
				return printBudgetStatus(ctx, store, budget)
			}

			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}

			// One status line per category: the first active budget wins.
			seen := make(map[string]bool)
			reported := 0
			for i := range budgets {
				b := &budgets[i]
				key := strings.ToLower(b.Category)
				if !b.IsActive || seen[key] {
					continue
				}
				seen[key] = true
				if err := printBudgetStatus(ctx, store, b); err != nil {
					return err
				}
				reported++
			}

			if reported == 0 {
				fmt.Println(cli.InfoStyle.Render("No active budgets. Use 'tally budgets set' to create one."))
			}
			return nil
		},
	}
}

func printBudgetStatus(ctx context.Context, store service.Storage, budget *model.Budget) error {
	expenses, err := store.GetExpensesByCategory(ctx, budget.Category)
	if err != nil {
		return fmt.Errorf("failed to load expenses for %q: %w", budget.Category, err)
	}

	spent := model.TotalSpending(expenses, budget.Category)
	status := budget.Status(spent)

	fmt.Printf("%s (%s, %.2f)\n",
		cli.TitleStyle.Render(budget.Category), budget.Period, budget.Amount)
	fmt.Printf("  %s\n", cli.TierStyle(status.Tier).Render(status.Message()))

	if budget.Period != model.PeriodDaily {
		days := budget.RemainingDaysInPeriod(time.Now())
		fmt.Printf("  %s\n", cli.SubtleStyle.Render(fmt.Sprintf(
			"%d day(s) left in period, %.2f/day budgeted", days, budget.DailyEquivalent())))
	}

	return nil
}
