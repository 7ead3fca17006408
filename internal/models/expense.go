package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense регулярный расход (аренда, подписки и т.п.)
type Expense struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  Category        `json:"category" db:"category"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Period    Period          `json:"period" db:"period"`
	IsFixed   bool            `json:"is_fixed" db:"is_fixed"` // фиксированный или переменный
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type ExpenseCreate struct {
	Name     string          `json:"name" binding:"required,notblank"`
	Category string          `json:"category" binding:"required,budgetcategory"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Period   Period          `json:"period" binding:"omitempty,budgetperiod"`
	IsFixed  bool            `json:"is_fixed"`
}

// InPeriod пересчитывает сумму расхода в период бюджета, с точностью до копеек
func (e Expense) InPeriod(p Period) decimal.Decimal {
	if e.Period == p || e.Period == "" {
		return e.Amount
	}
	return e.Amount.
		Mul(decimal.NewFromInt(e.Period.PerYear())).
		Div(decimal.NewFromInt(p.PerYear())).
		Round(2)
}
