// Package state хранит финансовое состояние пользователя в памяти: доход, регулярные расходы,
// журнал транзакций и цель накоплений. Store не потокобезопасен, вызовы сериализует сервисный слой.
package state

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/budget"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	ratios       models.Ratios
	income       *models.Income
	plan         *models.BudgetPlan
	expenses     []models.Expense
	transactions []models.Transaction
	goal         *models.SavingsGoal
	now          func() time.Time
}

type Option func(*Store)

// WithClock подменяет часы, нужно для тестов и воспроизводимых симуляций
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(ratios models.Ratios, opts ...Option) (*Store, error) {
	if err := budget.ValidateRatios(ratios); err != nil {
		return nil, err
	}
	s := &Store{ratios: ratios, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Now() time.Time {
	return s.now()
}

// SetIncome задает доход и пересчитывает план
func (s *Store) SetIncome(amount decimal.Decimal, period models.Period, currency string) (*models.BudgetPlan, error) {
	if period == "" {
		period = models.PeriodMonthly
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w %q", models.ErrInvalidPeriod, period)
	}
	income := models.Income{Amount: amount, Period: period, Currency: currency, UpdatedAt: s.now()}
	if income.Currency == "" && s.income != nil {
		income.Currency = s.income.Currency
	}

	plan, err := budget.ComputePlan(income, s.ratios)
	if err != nil {
		return nil, err
	}
	s.income = &income
	s.plan = plan
	return plan, nil
}

// SetRatios меняет доли, план пересчитывается если доход уже задан
func (s *Store) SetRatios(ratios models.Ratios) (*models.BudgetPlan, error) {
	if err := budget.ValidateRatios(ratios); err != nil {
		return nil, err
	}
	if s.income != nil {
		plan, err := budget.ComputePlan(*s.income, ratios)
		if err != nil {
			return nil, err
		}
		s.plan = plan
	}
	s.ratios = ratios
	return s.plan, nil
}

func (s *Store) Ratios() models.Ratios {
	return s.ratios
}

func (s *Store) Income() *models.Income {
	if s.income == nil {
		return nil
	}
	income := *s.income
	return &income
}

// Plan текущий план, ErrNoIncome если доход не задан
func (s *Store) Plan() (*models.BudgetPlan, error) {
	if s.plan == nil {
		return nil, models.ErrNoIncome
	}
	return copyPlan(s.plan), nil
}

// AddExpense добавляет регулярный расход. Расход с тем же именем заменяется
func (s *Store) AddExpense(e models.Expense) (*models.Expense, error) {
	if err := models.CheckAmount(e.Amount); err != nil {
		return nil, fmt.Errorf("expense: %w", err)
	}
	if err := s.checkCategory(e.Category); err != nil {
		return nil, err
	}
	if e.Period == "" {
		e.Period = s.plan.Period
	}
	if !e.Period.Valid() {
		return nil, fmt.Errorf("%w %q", models.ErrInvalidPeriod, e.Period)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	kept := s.expenses[:0]
	for _, existing := range s.expenses {
		if !strings.EqualFold(existing.Name, e.Name) {
			kept = append(kept, existing)
		}
	}
	s.expenses = append(kept, e)
	return &e, nil
}

func (s *Store) Expenses() []models.Expense {
	return append([]models.Expense(nil), s.expenses...)
}

// RecordTransaction добавляет запись в журнал. Журнал упорядочен по дате: запись раньше
// последней отклоняется, пустая дата заменяется текущим временем (не раньше последней записи).
// Транзакция в savings увеличивает прогресс цели
func (s *Store) RecordTransaction(tx models.Transaction) (*models.Transaction, error) {
	if err := models.CheckAmount(tx.Amount); err != nil {
		return nil, fmt.Errorf("transaction: %w", err)
	}
	if err := s.checkCategory(tx.Category); err != nil {
		return nil, err
	}

	var last *models.Transaction
	if n := len(s.transactions); n > 0 {
		last = &s.transactions[n-1]
	}

	now := s.now()
	if tx.Date.IsZero() {
		tx.Date = now
		if last != nil && tx.Date.Before(last.Date) {
			tx.Date = last.Date
		}
	} else if last != nil && tx.Date.Before(last.Date) {
		return nil, fmt.Errorf("%w: %s < %s", models.ErrOutOfOrder,
			tx.Date.Format(time.RFC3339), last.Date.Format(time.RFC3339))
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.Seq = 1
	if last != nil {
		tx.Seq = last.Seq + 1
	}
	tx.CreatedAt = now

	s.transactions = append(s.transactions, tx)

	if tx.Category == models.CategorySavings && s.goal != nil {
		s.goal.CurrentAmount = s.goal.CurrentAmount.Add(tx.Amount)
		s.goal.UpdatedAt = now
	}
	return &tx, nil
}

// History возвращает транзакции в порядке добавления
func (s *Store) History(filter models.TransactionFilter) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var result []models.Transaction
	for _, tx := range s.transactions {
		if filter.Category != nil && tx.Category != *filter.Category {
			continue
		}
		if filter.DateFrom != nil && tx.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !tx.Date.Before(*filter.DateTo) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tx.Description), search) {
			continue
		}
		result = append(result, tx)
	}

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[len(result)-filter.Limit:]
	}
	return result
}

// SetGoal задает или заменяет цель накоплений, id и дата создания сохраняются
func (s *Store) SetGoal(g models.SavingsGoal) (*models.SavingsGoal, error) {
	if err := models.CheckAmount(g.TargetAmount); err != nil {
		return nil, fmt.Errorf("goal target: %w", err)
	}
	if g.CurrentAmount.IsNegative() || !models.IsCents(g.CurrentAmount) {
		return nil, fmt.Errorf("goal progress: %w", models.ErrInvalidAmount)
	}

	now := s.now()
	if s.goal != nil {
		g.ID = s.goal.ID
		g.CreatedAt = s.goal.CreatedAt
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	s.goal = &g
	return s.Goal(), nil
}

// Goal копия цели с вычисленными полями, nil если цели нет
func (s *Store) Goal() *models.SavingsGoal {
	if s.goal == nil {
		return nil
	}
	g := *s.goal
	g.Enrich(s.period(), s.now())
	return &g
}

// Spent расходы категории за текущий период: регулярные расходы в пересчете на период
// плюс транзакции журнала внутри периода
func (s *Store) Spent(c models.Category) (decimal.Decimal, error) {
	if err := s.checkCategory(c); err != nil {
		return decimal.Zero, err
	}
	return s.spent(s.now())[c], nil
}

// Balance остаток категории: лимит минус расходы за период
func (s *Store) Balance(c models.Category) (decimal.Decimal, error) {
	if err := s.checkCategory(c); err != nil {
		return decimal.Zero, err
	}
	allocated, _ := s.plan.Allocated(c)
	return allocated.Sub(s.spent(s.now())[c]), nil
}

// Balances остатки всех категорий плана
func (s *Store) Balances() ([]models.CategoryBalance, error) {
	if s.plan == nil {
		return nil, models.ErrNoIncome
	}
	spent := s.spent(s.now())

	balances := make([]models.CategoryBalance, 0, len(s.plan.Allocations))
	for _, c := range sortedCategories(s.plan) {
		allocated := s.plan.Allocations[c]
		b := models.CategoryBalance{
			Category:  c,
			Allocated: allocated,
			Spent:     spent[c],
			Remaining: allocated.Sub(spent[c]),
		}
		if allocated.IsPositive() {
			b.SpentPercent = spent[c].Div(allocated).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		balances = append(balances, b)
	}
	return balances, nil
}

// View срез состояния для симулятора
func (s *Store) View() (models.StateView, error) {
	if s.plan == nil {
		return models.StateView{}, models.ErrNoIncome
	}
	now := s.now()
	view := models.StateView{
		AsOf:  now,
		Spent: s.spent(now),
		Goal:  s.Goal(),
	}
	if view.Goal != nil {
		view.MinimumContribution = view.Goal.RequiredPerPeriod
	}
	return view, nil
}

// CommittedExpenses регулярные расходы в пересчете на период плана, отдельно фиксированные
func (s *Store) CommittedExpenses() (fixed, variable decimal.Decimal) {
	period := s.period()
	for _, e := range s.expenses {
		if e.IsFixed {
			fixed = fixed.Add(e.InPeriod(period))
		} else {
			variable = variable.Add(e.InPeriod(period))
		}
	}
	return fixed, variable
}

// Snapshot глубокая копия состояния для сохранения
func (s *Store) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Income:       s.Income(),
		Ratios:       s.ratios,
		Expenses:     s.Expenses(),
		Transactions: append([]models.Transaction(nil), s.transactions...),
	}
	if s.goal != nil {
		g := *s.goal
		snap.Goal = &g
	}
	return snap
}

// Restore заменяет состояние снимком, план пересчитывается
func (s *Store) Restore(snap models.Snapshot) error {
	ratios := snap.Ratios
	if ratios == (models.Ratios{}) {
		ratios = s.ratios
	}
	if err := budget.ValidateRatios(ratios); err != nil {
		return err
	}

	var plan *models.BudgetPlan
	if snap.Income != nil {
		p, err := budget.ComputePlan(*snap.Income, ratios)
		if err != nil {
			return fmt.Errorf("restore income: %w", err)
		}
		plan = p
	}

	transactions := append([]models.Transaction(nil), snap.Transactions...)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Seq < transactions[j].Seq
	})

	s.ratios = ratios
	s.plan = plan
	s.income = nil
	if snap.Income != nil {
		income := *snap.Income
		s.income = &income
	}
	s.expenses = append([]models.Expense(nil), snap.Expenses...)
	s.transactions = transactions
	s.goal = nil
	if snap.Goal != nil {
		g := *snap.Goal
		s.goal = &g
	}
	return nil
}

func (s *Store) checkCategory(c models.Category) error {
	if s.plan == nil {
		return models.ErrNoIncome
	}
	if _, ok := s.plan.Allocated(c); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownCategory, c)
	}
	return nil
}

func (s *Store) period() models.Period {
	if s.plan != nil {
		return s.plan.Period
	}
	return models.PeriodMonthly
}

func (s *Store) spent(now time.Time) map[models.Category]decimal.Decimal {
	period := s.period()
	start, end := period.Bounds(now)

	spent := make(map[models.Category]decimal.Decimal, len(models.PlanCategories))
	for _, e := range s.expenses {
		spent[e.Category] = spent[e.Category].Add(e.InPeriod(period))
	}
	for _, tx := range s.transactions {
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
	}
	return spent
}

func copyPlan(p *models.BudgetPlan) *models.BudgetPlan {
	cp := *p
	cp.Allocations = make(map[models.Category]decimal.Decimal, len(p.Allocations))
	for c, amount := range p.Allocations {
		cp.Allocations[c] = amount
	}
	return &cp
}

func sortedCategories(p *models.BudgetPlan) []models.Category {
	result := make([]models.Category, 0, len(p.Allocations))
	for _, c := range models.PlanCategories {
		if _, ok := p.Allocations[c]; ok {
			result = append(result, c)
		}
	}
	return result
}
