package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	Amount    decimal.Decimal `json:"amount" db:"income_amount"`
	Period    Period          `json:"period" db:"income_period"`
	Currency  string          `json:"currency" db:"currency"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type IncomeUpdate struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Period   Period          `json:"period" binding:"omitempty,budgetperiod"`
	Currency string          `json:"currency" binding:"omitempty,len=3"`
}

// Ratios доли дохода по категориям, в сумме должны давать 1
type Ratios struct {
	Needs   float64 `json:"needs" toml:"needs"`
	Wants   float64 `json:"wants" toml:"wants"`
	Savings float64 `json:"savings" toml:"savings"`
}

func (r Ratios) Of(c Category) float64 {
	switch c {
	case CategoryNeeds:
		return r.Needs
	case CategoryWants:
		return r.Wants
	case CategorySavings:
		return r.Savings
	}
	return 0
}

type BudgetPlan struct {
	Period      Period                       `json:"period"`
	Income      decimal.Decimal              `json:"income"`
	Ratios      Ratios                       `json:"ratios"`
	Allocations map[Category]decimal.Decimal `json:"allocations"`
}

// Allocated возвращает лимит категории, ok=false если категории нет в плане
func (p *BudgetPlan) Allocated(c Category) (decimal.Decimal, bool) {
	if p == nil {
		return decimal.Zero, false
	}
	amount, ok := p.Allocations[c]
	return amount, ok
}

// Total сумма всех лимитов, по инварианту равна доходу
func (p *BudgetPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.Allocations {
		total = total.Add(amount)
	}
	return total
}

// NeedsFirstSplit стратегия "сначала обязательные": остаток после фиксированных расходов
// делится между сбережениями и желаниями
type NeedsFirstSplit struct {
	Status             string          `json:"status"` // surplus, deficit
	NeedsTotal         decimal.Decimal `json:"needs_total"`
	Discretionary      decimal.Decimal `json:"discretionary"`
	RecommendedSavings decimal.Decimal `json:"recommended_savings"`
	RecommendedWants   decimal.Decimal `json:"recommended_wants"`
	NeedsGap           decimal.Decimal `json:"needs_gap"`
}

type CategoryBalance struct {
	Category     Category        `json:"category"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	SpentPercent float64         `json:"spent_percent"`
}

type BudgetAlert struct {
	Category  Category        `json:"category"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Percent   float64         `json:"percent"`
	AlertType string          `json:"alert_type"` // warning, exceeded
}
