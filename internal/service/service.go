package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alligatorO15/fin-mentor/internal/ai"
	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/state"
)

type Services struct {
	Auth        AuthService
	Budget      BudgetService
	Transaction TransactionService
	Goal        GoalService
	Purchase    PurchaseService
	Reflection  ReflectionService
}

// NewServices поднимает состояние из repos (nil - только память) и собирает сервисы
func NewServices(ctx context.Context, repos *repository.Repositories, cfg *config.Config, logger *slog.Logger, opts ...state.Option) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := state.New(cfg.Ratios, opts...)
	if err != nil {
		return nil, err
	}
	ledger, err := NewLedger(ctx, store, repos, logger)
	if err != nil {
		return nil, err
	}

	explainer, err := ai.NewExplainer(cfg.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("explanation provider: %w", err)
	}
	mentor := ai.NewMentor(explainer, cfg.MentorConfig(), logger)
	logger.Info("explanation layer ready", "provider", mentor.Provider(), "mock_mode", cfg.Explain.MockMode)

	return &Services{
		Auth:        NewAuthService(cfg),
		Budget:      NewBudgetService(ledger, cfg),
		Transaction: NewTransactionService(ledger),
		Goal:        NewGoalService(ledger),
		Purchase:    NewPurchaseService(ledger, mentor),
		Reflection:  NewReflectionService(ledger, nil),
	}, nil
}
