package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction запись журнала, после добавления не меняется
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Seq         int64           `json:"seq" db:"seq"` // порядковый номер в журнале
	Date        time.Time       `json:"date" db:"date"`
	Category    Category        `json:"category" db:"category"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type TransactionCreate struct {
	Category    string          `json:"category" binding:"required,budgetcategory"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"` // пусто = сейчас
}

type TransactionFilter struct {
	Category *Category  `form:"category"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"` //транзакции с этой даты
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`   // до этой даты (не включая)
	Search   string     `form:"search"`                             //по description
	Limit    int        `form:"limit"`                              // только последние N
}
