// Package budget распределяет доход по категориям needs/wants/savings.
// Все функции чистые: одинаковый вход всегда дает одинаковый план.
package budget

import (
	"fmt"
	"math"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/shopspring/decimal"
)

const ratioTolerance = 1e-9

// доля дискреционного остатка, которую стратегия needs-first советует откладывать
var needsFirstSavingsShare = decimal.NewFromFloat(0.4)

// DefaultRatios правило 50/30/20
func DefaultRatios() models.Ratios {
	return models.Ratios{Needs: 0.5, Wants: 0.3, Savings: 0.2}
}

// ValidateRatios проверяет что доли неотрицательные и в сумме дают 1
func ValidateRatios(r models.Ratios) error {
	for _, c := range models.PlanCategories {
		v := r.Of(c)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", models.ErrInvalidRatios, c, v)
		}
	}
	sum := r.Needs + r.Wants + r.Savings
	if math.Abs(sum-1) > ratioTolerance {
		return fmt.Errorf("%w: sum is %v", models.ErrInvalidRatios, sum)
	}
	return nil
}

// ComputePlan делит доход по долям. Округляются накопленные суммы, а не отдельные доли,
// поэтому лимиты не бывают отрицательными и в сумме точно равны доходу
func ComputePlan(income models.Income, ratios models.Ratios) (*models.BudgetPlan, error) {
	if err := models.CheckAmount(income.Amount); err != nil {
		return nil, fmt.Errorf("income: %w", err)
	}
	if err := ValidateRatios(ratios); err != nil {
		return nil, err
	}

	period := income.Period
	if period == "" {
		period = models.PeriodMonthly
	}

	needs := income.Amount.Mul(decimal.NewFromFloat(ratios.Needs)).Round(2)
	needsWants := income.Amount.Mul(decimal.NewFromFloat(ratios.Needs + ratios.Wants)).Round(2)
	if needsWants.GreaterThan(income.Amount) {
		needsWants = income.Amount
	}
	if needs.GreaterThan(needsWants) {
		needs = needsWants
	}

	return &models.BudgetPlan{
		Period: period,
		Income: income.Amount,
		Ratios: ratios,
		Allocations: map[models.Category]decimal.Decimal{
			models.CategoryNeeds:   needs,
			models.CategoryWants:   needsWants.Sub(needs),
			models.CategorySavings: income.Amount.Sub(needsWants),
		},
	}, nil
}

// NeedsFirst стратегия "сначала обязательные": доход минус фиксированные расходы,
// остаток 40% в сбережения и 60% на желания. При дефиците показывает разрыв
func NeedsFirst(income, fixedTotal decimal.Decimal) models.NeedsFirstSplit {
	discretionary := income.Sub(fixedTotal)
	if discretionary.IsNegative() {
		return models.NeedsFirstSplit{
			Status:     "deficit",
			NeedsTotal: fixedTotal,
			NeedsGap:   discretionary.Abs(),
		}
	}

	savings := discretionary.Mul(needsFirstSavingsShare).Round(2)
	return models.NeedsFirstSplit{
		Status:             "surplus",
		NeedsTotal:         fixedTotal,
		Discretionary:      discretionary,
		RecommendedSavings: savings,
		RecommendedWants:   discretionary.Sub(savings),
	}
}
