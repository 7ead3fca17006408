// mentor командный клиент: те же сервисы что и у HTTP сервера, поверх настроенного хранилища
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "mentor",
	Short:         "Personal budget mentor",
	Long:          "Plan a budget, record spending and ask whether a purchase fits before you make it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "TOML config file (overrides MENTOR_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log storage and provider details")
}

// app окружение одной команды
type app struct {
	cfg      *config.Config
	services *service.Services
}

// run открывает хранилище, поднимает сервисы и выполняет fn
func run(fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		_ = godotenv.Load()
		if flagConfig != "" {
			if err := os.Setenv("MENTOR_CONFIG", flagConfig); err != nil {
				return err
			}
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		repos, closeDB, err := repository.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB()

		services, err := service.NewServices(ctx, repos, cfg, logger)
		if err != nil {
			return err
		}
		return fn(ctx, &app{cfg: cfg, services: services})
	}
}

// currency валюта дохода, если он задан, иначе из конфига
func (a *app) currency(ctx context.Context) string {
	if income, err := a.services.Budget.GetIncome(ctx); err == nil && income.Currency != "" {
		return income.Currency
	}
	return a.cfg.DefaultCurrency
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidAmount, s)
	}
	return amount, nil
}
