package main

import (
	"context"
	"fmt"

	"github.com/alligatorO15/fin-mentor/internal/cli"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagExpenseCategory string
	flagExpensePeriod   string
	flagExpenseFixed    bool
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Recurring expenses counted against every budget period",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a recurring expense, an existing name is replaced",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			input := &models.ExpenseCreate{
				Name:     args[0],
				Category: flagExpenseCategory,
				Amount:   amount,
				IsFixed:  flagExpenseFixed,
			}
			// пустой период = период дохода
			if flagExpensePeriod != "" {
				if input.Period, err = models.ParsePeriod(flagExpensePeriod); err != nil {
					return err
				}
			}

			expense, err := a.services.Transaction.AddExpense(ctx, input)
			if err != nil {
				return err
			}
			fmt.Printf("\n  Saved %s: %s per %s (%s)\n\n",
				expense.Name, cli.FormatMoney(expense.Amount, a.currency(ctx)), expense.Period, expense.Category)
			return nil
		})(cmd, args)
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring expenses",
	RunE: run(func(ctx context.Context, a *app) error {
		expenses, err := a.services.Transaction.ListExpenses(ctx)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("\n  No recurring expenses yet.")
			return nil
		}

		currency := a.currency(ctx)
		rows := make([][]string, 0, len(expenses))
		for _, e := range expenses {
			kind := "variable"
			if e.IsFixed {
				kind = "fixed"
			}
			rows = append(rows, []string{e.Name, e.Category.String(), string(e.Period), kind, cli.FormatMoney(e.Amount, currency)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recurring expenses",
			Headers: []string{"Name", "Category", "Period", "Kind", "Amount"},
			Rows:    rows,
		}))
		return nil
	}),
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "needs", "Category: needs, wants, savings")
	expenseAddCmd.Flags().StringVar(&flagExpensePeriod, "period", "", "Expense period (default: income period)")
	expenseAddCmd.Flags().BoolVar(&flagExpenseFixed, "fixed", false, "Fixed expense such as rent")
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd)

	rootCmd.AddCommand(expenseCmd)
}
