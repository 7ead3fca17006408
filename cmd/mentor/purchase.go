package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-mentor/internal/cli"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagPurchaseCategory string
	flagPurchaseNote     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <amount> [description...]",
	Short: "Check whether a purchase fits the budget, nothing is recorded",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			input, err := purchaseRequest(args)
			if err != nil {
				return err
			}
			advice, err := a.services.Purchase.Simulate(ctx, input)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Print(cli.RenderAdvice(advice, a.currency(ctx)))
			fmt.Println()
			return nil
		})(cmd, args)
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <amount> [description...]",
	Short: "Record a purchase as a transaction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app) error {
			input, err := purchaseRequest(args)
			if err != nil {
				return err
			}
			confirmation, err := a.services.Purchase.Confirm(ctx, input)
			if err != nil {
				return err
			}
			tx := confirmation.Transaction
			fmt.Printf("\n  %s  recorded #%d %s %s\n\n",
				cli.RenderVerdict(confirmation.Result.Verdict), tx.Seq, tx.Description, cli.FormatMoney(tx.Amount, a.currency(ctx)))
			return nil
		})(cmd, args)
	},
}

func purchaseRequest(args []string) (*models.PurchaseRequest, error) {
	amount, err := parseAmount(args[0])
	if err != nil {
		return nil, err
	}
	description := strings.Join(args[1:], " ")
	if description == "" {
		description = flagPurchaseNote
	}
	return &models.PurchaseRequest{
		Description: description,
		Category:    flagPurchaseCategory,
		Amount:      amount,
	}, nil
}

func init() {
	for _, cmd := range []*cobra.Command{simulateCmd, buyCmd} {
		cmd.Flags().StringVarP(&flagPurchaseCategory, "category", "c", "wants", "Category: needs or wants")
		cmd.Flags().StringVar(&flagPurchaseNote, "note", "purchase", "Description when none is given")
	}
	rootCmd.AddCommand(simulateCmd, buyCmd)
}
