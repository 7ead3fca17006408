package service

import (
	"context"

	"github.com/alligatorO15/fin-mentor/internal/budget"
	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/state"
	"github.com/shopspring/decimal"
)

// порог предупреждения о расходах категории, в процентах
const alertPercent = 80

type BudgetService interface {
	SetIncome(ctx context.Context, input *models.IncomeUpdate) (*models.BudgetPlan, error)
	GetIncome(ctx context.Context) (*models.Income, error)
	SetRatios(ctx context.Context, ratios models.Ratios) (*models.BudgetPlan, error)
	GetRatios(ctx context.Context) (models.Ratios, error)
	GetPlan(ctx context.Context) (*models.BudgetPlan, error)
	GetBalances(ctx context.Context) ([]models.CategoryBalance, error)
	GetSummary(ctx context.Context) (*models.FinancialSummary, error)
	GetAlerts(ctx context.Context) ([]models.BudgetAlert, error)
}

type budgetService struct {
	ledger *Ledger
	config *config.Config
}

func NewBudgetService(ledger *Ledger, cfg *config.Config) BudgetService {
	return &budgetService{ledger: ledger, config: cfg}
}

func (s *budgetService) SetIncome(ctx context.Context, input *models.IncomeUpdate) (*models.BudgetPlan, error) {
	var plan *models.BudgetPlan
	err := s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		period := input.Period
		if period == "" {
			period = s.config.DefaultPeriod
		}
		currency := input.Currency
		if currency == "" && st.Income() == nil {
			currency = s.config.DefaultCurrency
		}

		var err error
		plan, err = st.SetIncome(input.Amount, period, currency)
		if err != nil {
			return nil, err
		}
		return saveProfile(st), nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *budgetService) GetIncome(ctx context.Context) (*models.Income, error) {
	var income *models.Income
	err := s.ledger.Read(func(st *state.Store) error {
		income = st.Income()
		if income == nil {
			return models.ErrNoIncome
		}
		return nil
	})
	return income, err
}

// SetRatios план может быть nil, если доход еще не задан
func (s *budgetService) SetRatios(ctx context.Context, ratios models.Ratios) (*models.BudgetPlan, error) {
	var plan *models.BudgetPlan
	err := s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		var err error
		plan, err = st.SetRatios(ratios)
		if err != nil {
			return nil, err
		}
		return saveProfile(st), nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *budgetService) GetRatios(ctx context.Context) (models.Ratios, error) {
	var ratios models.Ratios
	err := s.ledger.Read(func(st *state.Store) error {
		ratios = st.Ratios()
		return nil
	})
	return ratios, err
}

func (s *budgetService) GetPlan(ctx context.Context) (*models.BudgetPlan, error) {
	var plan *models.BudgetPlan
	err := s.ledger.Read(func(st *state.Store) error {
		var err error
		plan, err = st.Plan()
		return err
	})
	return plan, err
}

func (s *budgetService) GetBalances(ctx context.Context) ([]models.CategoryBalance, error) {
	var balances []models.CategoryBalance
	err := s.ledger.Read(func(st *state.Store) error {
		var err error
		balances, err = st.Balances()
		return err
	})
	return balances, err
}

// GetSummary обзор текущего периода: план, остатки, свободные деньги и стратегия needs-first
func (s *budgetService) GetSummary(ctx context.Context) (*models.FinancialSummary, error) {
	summary := &models.FinancialSummary{}
	err := s.ledger.Read(func(st *state.Store) error {
		plan, err := st.Plan()
		if err != nil {
			return err
		}
		balances, err := st.Balances()
		if err != nil {
			return err
		}
		income := st.Income()

		start, end := plan.Period.Bounds(st.Now())
		fixed, variable := st.CommittedExpenses()

		summary.Period = plan.Period
		summary.StartDate = start
		summary.EndDate = end
		summary.Currency = income.Currency
		summary.Income = plan.Income
		summary.FixedExpenses = fixed
		summary.Plan = plan
		summary.Balances = balances
		summary.Goal = st.Goal()

		for _, tx := range st.History(models.TransactionFilter{DateFrom: &start, DateTo: &end}) {
			if tx.Category == models.CategorySavings {
				summary.SavedThisPeriod = summary.SavedThisPeriod.Add(tx.Amount)
			} else {
				summary.VariableSpent = summary.VariableSpent.Add(tx.Amount)
			}
		}

		summary.FreeCashFlow = plan.Income.
			Sub(fixed).
			Sub(variable).
			Sub(summary.VariableSpent).
			Sub(summary.SavedThisPeriod)

		// норма сбережений = (отложено / доход) × 100
		summary.SavingsRate = summary.SavedThisPeriod.Div(plan.Income).Mul(decimal.NewFromInt(100)).Round(2)

		summary.NeedsFirst = budget.NeedsFirst(plan.Income, fixed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// GetAlerts предупреждение от 80% лимита, превышение от 100%. Сбережения не проверяются
func (s *budgetService) GetAlerts(ctx context.Context) ([]models.BudgetAlert, error) {
	balances, err := s.GetBalances(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []models.BudgetAlert{}
	for _, b := range balances {
		if b.Category == models.CategorySavings {
			continue
		}
		overspent := b.Remaining.IsNegative()
		if b.SpentPercent < alertPercent && !overspent {
			continue
		}

		alertType := "warning"
		if b.SpentPercent >= 100 || overspent {
			alertType = "exceeded"
		}
		alerts = append(alerts, models.BudgetAlert{
			Category:  b.Category,
			Allocated: b.Allocated,
			Spent:     b.Spent,
			Percent:   b.SpentPercent,
			AlertType: alertType,
		})
	}
	return alerts, nil
}
