// Package ai объясняет результат симуляции человеческим языком.
// Модель ничего не считает: она получает готовый вердикт и только пересказывает его.
package ai

import (
	"context"
	"errors"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/shopspring/decimal"
)

// ErrExplanationUnavailable провайдер не смог дать объяснение. Наружу не уходит,
// Mentor подставляет шаблонный текст
var ErrExplanationUnavailable = errors.New("explanation unavailable")

// Context все что нужно провайдеру для объяснения
type Context struct {
	Result *models.SimulationResult
	Income decimal.Decimal
	Goal   *models.SavingsGoal
}

type Explainer interface {
	Name() string
	Explain(ctx context.Context, c Context) (string, error)
}
