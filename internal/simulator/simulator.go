// Package simulator отвечает на вопрос "что будет, если я это куплю".
// Simulate чистая функция: результат зависит только от предложения, плана и среза состояния.
package simulator

import (
	"fmt"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Simulate оценивает покупку.
//
// Если сумма помещается в остаток категории - affordable. Иначе нехватку можно покрыть
// из сбережений: неотложенный остаток savings за период плюс накопленное по цели сверх
// одного минимального взноса, за вычетом того, что прошлые перерасходы других категорий
// уже забрали из сбережений в этом периоде. Если этого не хватает - not_affordable, иначе
// affordable_with_tradeoff с компромиссом равным нехватке.
func Simulate(p models.PurchaseProposal, plan *models.BudgetPlan, view models.StateView) (*models.SimulationResult, error) {
	if err := models.CheckAmount(p.Amount); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if plan == nil {
		return nil, models.ErrNoIncome
	}
	allocated, ok := plan.Allocated(p.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, p.Category)
	}

	result := &models.SimulationResult{
		Proposal:       p,
		Period:         plan.Period,
		AsOf:           view.AsOf,
		RemainingAfter: make(map[models.Category]decimal.Decimal, len(plan.Allocations)),
	}
	drawn := alreadyDrawn(plan, view)
	for c, amount := range plan.Allocations {
		result.RemainingAfter[c] = amount.Sub(view.Spent[c])
	}
	result.RemainingAfter[models.CategorySavings] = result.RemainingAfter[models.CategorySavings].Sub(drawn)

	remaining := result.RemainingAfter[p.Category]
	result.CategoryRemaining = remaining
	available := decimal.Max(remaining, decimal.Zero)
	result.HeavyPurchase = p.Amount.Mul(two).GreaterThan(available)

	if p.Amount.LessThanOrEqual(available) {
		result.Verdict = models.VerdictAffordable
		result.RemainingAfter[p.Category] = remaining.Sub(p.Amount)
		result.Reason = fmt.Sprintf("%s fits in the %s budget: %s of %s left this %s.",
			p.Amount.StringFixed(2), p.Category, available.StringFixed(2), allocated.StringFixed(2), periodNoun(plan.Period))
		return result, nil
	}

	shortfall := p.Amount.Sub(available)
	result.Shortfall = shortfall

	var drawable decimal.Decimal
	if p.Category == models.CategorySavings {
		// покупка из самих сбережений, брать нехватку больше неоткуда
		result.RemainingAfter[p.Category] = remaining.Sub(p.Amount)
	} else {
		result.RemainingAfter[p.Category] = remaining.Sub(available)
		result.RemainingAfter[models.CategorySavings] = result.RemainingAfter[models.CategorySavings].Sub(shortfall)
		result.SavingsDrawn = shortfall
		drawable = drawableSavings(plan, view, drawn)
	}

	result.GoalDelayPeriods, result.DelayUnbounded = goalDelay(shortfall, plan, view)

	if shortfall.GreaterThan(drawable) {
		result.Verdict = models.VerdictNotAffordable
		result.Reason = fmt.Sprintf("%s exceeds the %s budget by %s and savings can only cover %s without falling below the goal minimum.",
			p.Amount.StringFixed(2), p.Category, shortfall.StringFixed(2), drawable.StringFixed(2))
		return result, nil
	}

	result.Verdict = models.VerdictAffordableWithTradeoff
	result.Reason = fmt.Sprintf("%s exceeds the %s budget by %s; covering it from savings delays the goal.",
		p.Amount.StringFixed(2), p.Category, shortfall.StringFixed(2))
	return result, nil
}

// alreadyDrawn сумма перерасходов не-savings категорий за период: ее уже покрыли сбережения
func alreadyDrawn(plan *models.BudgetPlan, view models.StateView) decimal.Decimal {
	drawn := decimal.Zero
	for c, allocated := range plan.Allocations {
		if c == models.CategorySavings {
			continue
		}
		if over := view.Spent[c].Sub(allocated); over.IsPositive() {
			drawn = drawn.Add(over)
		}
	}
	return drawn
}

// drawableSavings сколько еще можно взять из сбережений: остаток savings за период
// и накопленное по цели сверх минимального взноса минус уже взятое
func drawableSavings(plan *models.BudgetPlan, view models.StateView, drawn decimal.Decimal) decimal.Decimal {
	allocated, _ := plan.Allocated(models.CategorySavings)
	pool := decimal.Max(allocated.Sub(view.Spent[models.CategorySavings]), decimal.Zero)

	if view.Goal != nil {
		banked := view.Goal.CurrentAmount.Sub(view.MinimumContribution)
		if banked.IsPositive() {
			pool = pool.Add(banked)
		}
	}
	return decimal.Max(pool.Sub(drawn), decimal.Zero)
}

// goalDelay на сколько периодов сдвинется цель: нехватка / взнос за период с округлением вверх.
// Взнос берется из плана, если план ничего не откладывает - минимальный взнос цели
func goalDelay(shortfall decimal.Decimal, plan *models.BudgetPlan, view models.StateView) (int, bool) {
	contribution, _ := plan.Allocated(models.CategorySavings)
	if !contribution.IsPositive() {
		contribution = view.MinimumContribution
	}
	if !contribution.IsPositive() {
		return 0, true
	}
	return int(shortfall.Div(contribution).Ceil().IntPart()), false
}

func periodNoun(p models.Period) string {
	switch p {
	case models.PeriodWeekly:
		return "week"
	case models.PeriodQuarterly:
		return "quarter"
	case models.PeriodYearly:
		return "year"
	default:
		return "month"
	}
}
