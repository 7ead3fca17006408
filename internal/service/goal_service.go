package service

import (
	"context"
	"errors"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/state"
	"github.com/shopspring/decimal"
)

var ErrGoalNotFound = errors.New("savings goal is not set")

type GoalService interface {
	Set(ctx context.Context, input *models.GoalUpdate) (*models.SavingsGoal, error)
	Get(ctx context.Context) (*models.SavingsGoal, error)
}

type goalService struct {
	ledger *Ledger
}

func NewGoalService(ledger *Ledger) GoalService {
	return &goalService{ledger: ledger}
}

// Set задает цель; без current_amount накопленное по текущей цели сохраняется
func (s *goalService) Set(ctx context.Context, input *models.GoalUpdate) (*models.SavingsGoal, error) {
	var goal *models.SavingsGoal
	err := s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		current := decimal.Zero
		if existing := st.Goal(); existing != nil {
			current = existing.CurrentAmount
		}
		if input.CurrentAmount != nil {
			current = *input.CurrentAmount
		}

		var err error
		goal, err = st.SetGoal(models.SavingsGoal{
			Name:          input.Name,
			TargetAmount:  input.TargetAmount,
			CurrentAmount: current,
			TargetDate:    input.TargetDate,
		})
		if err != nil {
			return nil, err
		}
		saved := *goal
		return func(ctx context.Context, repos *repository.Repositories) error {
			return repos.Goal.Save(ctx, &saved)
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Get(ctx context.Context) (*models.SavingsGoal, error) {
	var goal *models.SavingsGoal
	err := s.ledger.Read(func(st *state.Store) error {
		goal = st.Goal()
		if goal == nil {
			return ErrGoalNotFound
		}
		return nil
	})
	return goal, err
}
