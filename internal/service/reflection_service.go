package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/state"
	"github.com/shopspring/decimal"
)

// доля категории в тратах, начиная с которой она считается доминирующей
var dominantShare = decimal.NewFromInt(50)

// изменение трат в процентах, после которого тренд уже не stable
var trendThreshold = decimal.NewFromInt(10)

// для тренда нужно хотя бы столько трат (без сбережений)
const minTrendTransactions = 4

type ReflectionService interface {
	Review(ctx context.Context) (*models.Review, error)
}

// Reflector ищет закономерности в истории. Базовая реализация простые правила,
// интерфейс оставлен под более умный анализ
type Reflector interface {
	Reflect(history []models.Transaction, balances []models.CategoryBalance) *models.Review
}

type reflectionService struct {
	ledger    *Ledger
	reflector Reflector
}

func NewReflectionService(ledger *Ledger, reflector Reflector) ReflectionService {
	if reflector == nil {
		reflector = BasicReflector{}
	}
	return &reflectionService{ledger: ledger, reflector: reflector}
}

func (s *reflectionService) Review(ctx context.Context) (*models.Review, error) {
	var (
		history  []models.Transaction
		balances []models.CategoryBalance
	)
	err := s.ledger.Read(func(st *state.Store) error {
		history = st.History(models.TransactionFilter{})
		balances, _ = st.Balances() // без дохода остатков нет, обзор истории все равно возможен
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reflector.Reflect(history, balances), nil
}

type BasicReflector struct{}

func (BasicReflector) Reflect(history []models.Transaction, balances []models.CategoryBalance) *models.Review {
	review := &models.Review{
		TransactionCount: len(history),
		ByCategory:       []models.CategoryAmount{},
		Patterns:         []models.Pattern{},
	}
	if len(history) == 0 {
		review.Message = "No transaction history to review yet."
		return review
	}

	totals := make(map[models.Category]*models.CategoryAmount)
	total := decimal.Zero
	for _, tx := range history {
		ca, ok := totals[tx.Category]
		if !ok {
			ca = &models.CategoryAmount{Category: tx.Category}
			totals[tx.Category] = ca
		}
		ca.Amount = ca.Amount.Add(tx.Amount)
		ca.Count++
		total = total.Add(tx.Amount)
	}

	for _, c := range models.PlanCategories {
		ca, ok := totals[c]
		if !ok {
			continue
		}
		if total.IsPositive() {
			ca.Percentage = ca.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		review.ByCategory = append(review.ByCategory, *ca)
	}
	sort.SliceStable(review.ByCategory, func(i, j int) bool {
		return review.ByCategory[i].Amount.GreaterThan(review.ByCategory[j].Amount)
	})

	review.Patterns = append(review.Patterns, models.Pattern{
		Type:        "activity",
		Title:       "Tracking habit",
		Description: fmt.Sprintf("You have logged %d transactions.", len(history)),
		Value:       decimal.NewFromInt(int64(len(history))),
	})

	top := review.ByCategory[0]
	if top.Percentage.GreaterThan(dominantShare) {
		review.Patterns = append(review.Patterns, models.Pattern{
			Type:        "dominant_category",
			Title:       fmt.Sprintf("Most money goes to %s", top.Category),
			Description: fmt.Sprintf("%s%% of everything you logged went to %s.", top.Percentage.StringFixed(0), top.Category),
			Category:    top.Category,
			Value:       top.Percentage,
		})
	}

	for _, b := range balances {
		if b.Category != models.CategorySavings && b.Remaining.IsNegative() {
			review.Patterns = append(review.Patterns, models.Pattern{
				Type:        "overspent",
				Title:       fmt.Sprintf("%s budget exceeded", b.Category),
				Description: fmt.Sprintf("You are %s over the %s limit this period.", b.Remaining.Abs().StringFixed(2), b.Category),
				Category:    b.Category,
				Value:       b.Remaining.Abs(),
			})
		}
	}

	if trend, ok := spendingTrend(history); ok {
		review.Patterns = append(review.Patterns, trend)
	}

	review.Message = fmt.Sprintf("I notice you have logged %d transactions. Keep tracking to get better insights!", len(history))
	if len(review.Patterns) > 1 {
		review.Message += " " + review.Patterns[1].Description
	}
	return review
}

// spendingTrend сравнивает вторую половину трат с первой, сбережения не считаются
func spendingTrend(history []models.Transaction) (models.Pattern, bool) {
	spending := make([]decimal.Decimal, 0, len(history))
	for _, tx := range history {
		if tx.Category != models.CategorySavings {
			spending = append(spending, tx.Amount)
		}
	}
	if len(spending) < minTrendTransactions {
		return models.Pattern{}, false
	}

	mid := len(spending) / 2
	firstHalf, secondHalf := decimal.Zero, decimal.Zero
	for i, amount := range spending {
		if i < mid {
			firstHalf = firstHalf.Add(amount)
		} else {
			secondHalf = secondHalf.Add(amount)
		}
	}
	if firstHalf.IsZero() {
		return models.Pattern{}, false
	}

	change := secondHalf.Sub(firstHalf).Div(firstHalf).Mul(decimal.NewFromInt(100)).Round(1)
	pattern := models.Pattern{Type: "spending_trend", Value: change}
	switch {
	case change.GreaterThan(trendThreshold):
		pattern.Title = "Spending is increasing"
		pattern.Description = fmt.Sprintf("Your recent spending is %s%% higher than earlier.", change.StringFixed(0))
	case change.LessThan(trendThreshold.Neg()):
		pattern.Title = "Spending is decreasing"
		pattern.Description = fmt.Sprintf("Your recent spending is %s%% lower than earlier.", change.Abs().StringFixed(0))
	default:
		pattern.Title = "Spending is stable"
		pattern.Description = "Your recent spending is close to earlier levels."
	}
	return pattern, true
}
