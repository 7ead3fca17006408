package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/cli"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagGoalName    string
	flagGoalDate    string
	flagGoalCurrent string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Savings goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <target>",
	Short: "Create or replace the savings goal, progress is kept unless --current is given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			target, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			input := &models.GoalUpdate{Name: flagGoalName, TargetAmount: target}
			if flagGoalDate != "" {
				date, err := time.Parse("2006-01-02", flagGoalDate)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", flagGoalDate)
				}
				input.TargetDate = &date
			}
			if flagGoalCurrent != "" {
				current, err := parseAmount(flagGoalCurrent)
				if err != nil {
					return err
				}
				input.CurrentAmount = &current
			}

			goal, err := a.services.Goal.Set(ctx, input)
			if err != nil {
				return err
			}
			printGoal(goal, a.currency(ctx))
			return nil
		})(cmd, args)
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goal progress",
	RunE: run(func(ctx context.Context, a *app) error {
		goal, err := a.services.Goal.Get(ctx)
		if err != nil {
			return err
		}
		printGoal(goal, a.currency(ctx))
		return nil
	}),
}

func printGoal(g *models.SavingsGoal, currency string) {
	rows := [][]string{
		{"Target", cli.FormatMoney(g.TargetAmount, currency)},
		{"Saved", cli.FormatMoney(g.CurrentAmount, currency)},
		{"Progress", cli.RenderProgressBar(g.Progress, 20)},
	}
	if g.TargetDate != nil {
		rows = append(rows,
			[]string{"Target date", cli.FormatDate(*g.TargetDate)},
			[]string{"Days left", fmt.Sprintf("%d", g.DaysRemaining)},
			[]string{"Needed per period", cli.FormatMoney(g.RequiredPerPeriod, currency)},
		)
	}

	name := g.Name
	if name == "" {
		name = "Savings goal"
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Title: name, Rows: rows}))
}

func init() {
	goalSetCmd.Flags().StringVar(&flagGoalName, "name", "", "Goal name")
	goalSetCmd.Flags().StringVar(&flagGoalDate, "date", "", "Target date, YYYY-MM-DD")
	goalSetCmd.Flags().StringVar(&flagGoalCurrent, "current", "", "Amount already saved")
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	rootCmd.AddCommand(goalCmd)
}
