package models

import "github.com/shopspring/decimal"

// CheckAmount сумма положительна и задана не точнее копейки, база хранит NUMERIC(15, 2)
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !IsCents(amount) {
		return ErrInvalidAmount
	}
	return nil
}

func IsCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}
