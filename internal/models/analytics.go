package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// предоставляет общий финансовый обзор за текущий период бюджета
type FinancialSummary struct {
	Period          Period          `json:"period"`         // период дохода и плана
	StartDate       time.Time       `json:"start_date"`     // начало текущего периода
	EndDate         time.Time       `json:"end_date"`       // конец текущего периода (не включая)
	Currency        string          `json:"currency"`       // валюта дохода
	Income          decimal.Decimal `json:"income"`         // доход за период
	FixedExpenses   decimal.Decimal `json:"fixed_expenses"` // фиксированные регулярные расходы в пересчете на период
	VariableSpent   decimal.Decimal `json:"variable_spent"` // расходы по журналу за период (без сбережений)
	SavedThisPeriod decimal.Decimal `json:"saved_this_period"`
	FreeCashFlow    decimal.Decimal `json:"free_cash_flow"` // доход - фиксированные - переменные - отложенное
	SavingsRate     decimal.Decimal `json:"savings_rate"`   // норма сбережений в % = (Saved / Income) × 100
	// Финансовый индикатор: >20% хорошо, <10% плохо
	Plan       *BudgetPlan       `json:"plan"`
	Balances   []CategoryBalance `json:"balances"`
	NeedsFirst NeedsFirstSplit   `json:"needs_first"` // альтернативная стратегия для сравнения
	Goal       *SavingsGoal      `json:"goal,omitempty"`
}

// представляет сумму по категории
type CategoryAmount struct {
	Category   Category        `json:"category"`
	Amount     decimal.Decimal `json:"amount"`     // cумма по этой категории
	Percentage decimal.Decimal `json:"percentage"` // доля в общем объеме в % = (Amount / Total) × 100
	Count      int             `json:"count"`      // количество транзакций в этой категории
}

// Pattern замеченная особенность в истории трат
type Pattern struct {
	Type        string          `json:"type"` // activity, dominant_category
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    Category        `json:"category,omitempty"`
	Value       decimal.Decimal `json:"value,omitempty"`
}

// Review итог анализа истории
type Review struct {
	TransactionCount int              `json:"transaction_count"`
	ByCategory       []CategoryAmount `json:"by_category"`
	Patterns         []Pattern        `json:"patterns"`
	Message          string           `json:"message"`
}
