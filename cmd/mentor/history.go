package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/cli"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagHistoryCategory string
	flagHistorySearch   string
	flagHistoryFrom     string
	flagHistoryTo       string
	flagHistoryLimit    int
	flagRecordCategory  string
	flagRecordDate      string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Transaction log in recording order",
	RunE: run(func(ctx context.Context, a *app) error {
		filter := &models.TransactionFilter{Search: flagHistorySearch, Limit: flagHistoryLimit}
		if flagHistoryCategory != "" {
			c, err := models.ParseCategory(flagHistoryCategory)
			if err != nil {
				return err
			}
			filter.Category = &c
		}
		var err error
		if filter.DateFrom, err = parseDay(flagHistoryFrom); err != nil {
			return err
		}
		if filter.DateTo, err = parseDay(flagHistoryTo); err != nil {
			return err
		}

		history, err := a.services.Transaction.History(ctx, filter)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Println("\n  No transactions found.")
			return nil
		}

		currency := a.currency(ctx)
		rows := make([][]string, 0, len(history))
		for _, tx := range history {
			rows = append(rows, []string{
				fmt.Sprintf("%d", tx.Seq),
				cli.FormatDate(tx.Date),
				tx.Category.String(),
				tx.Description,
				cli.FormatMoney(tx.Amount, currency),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Transactions",
			Headers: []string{"#", "Date", "Category", "Description", "Amount"},
			Rows:    rows,
		}))
		return nil
	}),
}

var recordCmd = &cobra.Command{
	Use:   "record <amount> [description...]",
	Short: "Record spending without a simulation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			input := &models.TransactionCreate{Category: flagRecordCategory, Amount: amount}
			if len(args) > 1 {
				input.Description = strings.Join(args[1:], " ")
			}
			if input.Date, err = parseDay(flagRecordDate); err != nil {
				return err
			}

			tx, err := a.services.Transaction.Record(ctx, input)
			if err != nil {
				return err
			}
			fmt.Printf("\n  Recorded #%d %s %s (%s)\n\n", tx.Seq, tx.Description, cli.FormatMoney(tx.Amount, a.currency(ctx)), tx.Category)
			return nil
		})(cmd, args)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Look back at spending patterns",
	RunE: run(func(ctx context.Context, a *app) error {
		review, err := a.services.Reflection.Review(ctx)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("REVIEW  %d transactions", review.TransactionCount)))
		fmt.Println()
		if len(review.ByCategory) > 0 {
			currency := a.currency(ctx)
			rows := make([][]string, 0, len(review.ByCategory))
			for _, c := range review.ByCategory {
				rows = append(rows, []string{c.Category.String(), fmt.Sprintf("%d", c.Count), cli.FormatMoney(c.Amount, currency), c.Percentage.StringFixed(1) + "%"})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Category", "Count", "Amount", "Share"},
				Rows:    rows,
			}))
			fmt.Println()
		}
		for _, p := range review.Patterns {
			fmt.Printf("  * %s: %s\n", p.Title, p.Description)
		}
		fmt.Printf("\n  %s\n\n", review.Message)
		return nil
	}),
}

// parseDay пустая строка = nil
func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

func init() {
	historyCmd.Flags().StringVarP(&flagHistoryCategory, "category", "c", "", "Only this category")
	historyCmd.Flags().StringVarP(&flagHistorySearch, "search", "s", "", "Substring of the description")
	historyCmd.Flags().StringVar(&flagHistoryFrom, "from", "", "From date, YYYY-MM-DD")
	historyCmd.Flags().StringVar(&flagHistoryTo, "to", "", "Before date, YYYY-MM-DD")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 0, "Only the last N transactions")

	recordCmd.Flags().StringVarP(&flagRecordCategory, "category", "c", "needs", "Category: needs, wants, savings")
	recordCmd.Flags().StringVar(&flagRecordDate, "date", "", "Transaction date, YYYY-MM-DD (default: now)")

	rootCmd.AddCommand(historyCmd, recordCmd, reviewCmd)
}
