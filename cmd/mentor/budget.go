package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alligatorO15/fin-mentor/internal/cli"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagIncomePeriod   string
	flagIncomeCurrency string
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Show or set income",
	RunE: run(func(ctx context.Context, a *app) error {
		income, err := a.services.Budget.GetIncome(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n  Income: %s per %s (updated %s)\n\n",
			cli.FormatMoney(income.Amount, income.Currency), income.Period, cli.FormatDate(income.UpdatedAt))
		return nil
	}),
}

var incomeSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set income and recompute the budget plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			period, err := models.ParsePeriod(flagIncomePeriod)
			if err != nil {
				return err
			}
			plan, err := a.services.Budget.SetIncome(ctx, &models.IncomeUpdate{
				Amount:   amount,
				Period:   period,
				Currency: flagIncomeCurrency,
			})
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Print(cli.RenderPlan(plan, a.currency(ctx)))
			return nil
		})(cmd, args)
	},
}

var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "Budget split between needs, wants and savings",
}

var ratiosSetCmd = &cobra.Command{
	Use:   "set <needs> <wants> <savings>",
	Short: "Set budget ratios, fractions that sum to 1",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			var values [3]float64
			for i, s := range args {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("invalid ratio %q", s)
				}
				values[i] = v
			}
			plan, err := a.services.Budget.SetRatios(ctx, models.Ratios{Needs: values[0], Wants: values[1], Savings: values[2]})
			if err != nil {
				return err
			}
			if plan == nil {
				fmt.Println("\n  Ratios saved. Set income to get a plan.")
				return nil
			}
			fmt.Println()
			fmt.Print(cli.RenderPlan(plan, a.currency(ctx)))
			return nil
		})(cmd, args)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the budget plan and balances for the current period",
	RunE: run(func(ctx context.Context, a *app) error {
		plan, err := a.services.Budget.GetPlan(ctx)
		if err != nil {
			return err
		}
		balances, err := a.services.Budget.GetBalances(ctx)
		if err != nil {
			return err
		}
		currency := a.currency(ctx)
		fmt.Println()
		fmt.Print(cli.RenderPlan(plan, currency))
		fmt.Println()
		fmt.Print(cli.RenderBalances(balances, currency))

		alerts, err := a.services.Budget.GetAlerts(ctx)
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			fmt.Printf("  ! %s %s: %s of %s used\n",
				alert.Category, alert.AlertType, cli.FormatPercent(alert.Percent), cli.FormatMoney(alert.Allocated, currency))
		}
		return nil
	}),
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Financial overview of the current period",
	RunE: run(func(ctx context.Context, a *app) error {
		s, err := a.services.Budget.GetSummary(ctx)
		if err != nil {
			return err
		}
		c := s.Currency

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("SUMMARY  %s to %s", cli.FormatDate(s.StartDate), cli.FormatDate(s.EndDate))))
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Rows: [][]string{
				{"Income", cli.FormatMoney(s.Income, c)},
				{"Fixed expenses", cli.FormatMoney(s.FixedExpenses, c)},
				{"Spent", cli.FormatMoney(s.VariableSpent, c)},
				{"Saved", cli.FormatMoney(s.SavedThisPeriod, c)},
				{"Free cash flow", cli.FormatMoney(s.FreeCashFlow, c)},
				{"Savings rate", s.SavingsRate.StringFixed(1) + "%"},
			},
		}))
		fmt.Println()
		fmt.Print(cli.RenderBalances(s.Balances, c))
		fmt.Println()
		nf := s.NeedsFirst
		rows := [][]string{
			{"Needs total", cli.FormatMoney(nf.NeedsTotal, c)},
			{"Discretionary", cli.FormatMoney(nf.Discretionary, c)},
			{"Recommended savings", cli.FormatMoney(nf.RecommendedSavings, c)},
			{"Recommended wants", cli.FormatMoney(nf.RecommendedWants, c)},
		}
		if nf.NeedsGap.IsPositive() {
			rows = append(rows, []string{"Needs gap", cli.FormatMoney(nf.NeedsGap, c)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title: "Needs first (" + nf.Status + ")",
			Rows:  rows,
		}))
		return nil
	}),
}

func init() {
	incomeSetCmd.Flags().StringVar(&flagIncomePeriod, "period", "monthly", "Income period: weekly, monthly, quarterly, yearly")
	incomeSetCmd.Flags().StringVar(&flagIncomeCurrency, "currency", "", "ISO currency code (default from config)")
	incomeCmd.AddCommand(incomeSetCmd)
	ratiosCmd.AddCommand(ratiosSetCmd)

	rootCmd.AddCommand(incomeCmd, ratiosCmd, planCmd, summaryCmd)
}
