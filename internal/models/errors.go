package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidRatios   = errors.New("budget ratios must be non-negative and sum to 1")
	ErrUnknownCategory = errors.New("unknown category")
	ErrOutOfOrder      = errors.New("transaction date is before the last recorded transaction")
	ErrInvalidPeriod   = errors.New("unknown period")

	// пока доход не задан плана нет, значит любая категория неизвестна
	ErrNoIncome = fmt.Errorf("%w: no budget plan, set income first", ErrUnknownCategory)
)
