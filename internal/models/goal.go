package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal цель накоплений, прогресс растет с каждой транзакцией в категории savings
type SavingsGoal struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" db:"current_amount"`
	TargetDate    *time.Time      `json:"target_date" db:"target_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	// Вычисляются на лету
	Progress          float64         `json:"progress" db:"-"`
	DaysRemaining     int             `json:"days_remaining" db:"-"`
	RequiredPerPeriod decimal.Decimal `json:"required_per_period" db:"-"`
}

type GoalUpdate struct {
	Name          string           `json:"name"`
	TargetAmount  decimal.Decimal  `json:"target_amount" binding:"required"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time       `json:"target_date"`
}

// Remaining сколько осталось накопить, не меньше нуля
func (g *SavingsGoal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// MinimumContribution необходимый взнос за один период бюджета, чтобы успеть к TargetDate.
// Без даты минимума нет, если до даты меньше периода - нужна вся оставшаяся сумма
func (g *SavingsGoal) MinimumContribution(p Period, now time.Time) decimal.Decimal {
	if g == nil || g.TargetDate == nil {
		return decimal.Zero
	}
	remaining := g.Remaining()
	if remaining.IsZero() {
		return decimal.Zero
	}

	periods := g.TargetDate.Sub(now).Hours() / 24 / p.Days()
	if periods < 1 {
		return remaining
	}
	return remaining.Div(decimal.NewFromFloat(periods)).Round(2)
}

// Enrich заполняет вычисляемые поля
func (g *SavingsGoal) Enrich(p Period, now time.Time) {
	if g.TargetAmount.IsPositive() {
		progress := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).InexactFloat64()
		if progress > 100 {
			progress = 100
		}
		g.Progress = progress
	}

	g.DaysRemaining = 0
	if g.TargetDate != nil {
		if days := int(g.TargetDate.Sub(now).Hours() / 24); days > 0 {
			g.DaysRemaining = days
		}
	}

	g.RequiredPerPeriod = g.MinimumContribution(p, now)
}
