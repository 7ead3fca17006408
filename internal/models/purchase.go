package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Verdict string

const (
	VerdictAffordable             Verdict = "affordable"
	VerdictAffordableWithTradeoff Verdict = "affordable_with_tradeoff"
	VerdictNotAffordable          Verdict = "not_affordable"
)

// PurchaseProposal гипотетическая покупка, в журнал попадает только после подтверждения
type PurchaseProposal struct {
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

type PurchaseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required,budgetcategory"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// StateView срез состояния на момент AsOf, все что нужно симулятору
type StateView struct {
	AsOf                time.Time                    `json:"as_of"`
	Spent               map[Category]decimal.Decimal `json:"spent"` // регулярные расходы + транзакции за период
	Goal                *SavingsGoal                 `json:"goal,omitempty"`
	MinimumContribution decimal.Decimal              `json:"minimum_contribution"`
}

type SimulationResult struct {
	Proposal          PurchaseProposal             `json:"proposal"`
	Verdict           Verdict                      `json:"verdict"`
	CategoryRemaining decimal.Decimal              `json:"category_remaining"`
	Shortfall         decimal.Decimal              `json:"shortfall"` // он же размер компромисса
	SavingsDrawn      decimal.Decimal              `json:"savings_drawn"`
	RemainingAfter    map[Category]decimal.Decimal `json:"remaining_after"`
	GoalDelayPeriods  int                          `json:"goal_delay_periods"`
	DelayUnbounded    bool                         `json:"delay_unbounded"`
	HeavyPurchase     bool                         `json:"heavy_purchase"` // больше половины остатка категории
	Reason            string                       `json:"reason"`
	Period            Period                       `json:"period"`
	Currency          string                       `json:"currency"`
	AsOf              time.Time                    `json:"as_of"`
}

// PurchaseAdvice результат симуляции вместе с объяснением
type PurchaseAdvice struct {
	Result       *SimulationResult `json:"result"`
	Advice       string            `json:"advice"`
	AdviceSource string            `json:"advice_source"` // ollama, huggingface, template
}

// PurchaseConfirmation покупка записана в журнал
type PurchaseConfirmation struct {
	Result      *SimulationResult `json:"result"`
	Transaction *Transaction      `json:"transaction"`
}
