package service

import (
	"context"
	"fmt"

	"github.com/alligatorO15/fin-mentor/internal/ai"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/simulator"
	"github.com/alligatorO15/fin-mentor/internal/state"
)

type PurchaseService interface {
	// Simulate оценивает покупку и объясняет вердикт, состояние не меняется
	Simulate(ctx context.Context, input *models.PurchaseRequest) (*models.PurchaseAdvice, error)
	// Confirm записывает покупку в журнал как транзакцию
	Confirm(ctx context.Context, input *models.PurchaseRequest) (*models.PurchaseConfirmation, error)
}

type purchaseService struct {
	ledger *Ledger
	mentor *ai.Mentor
}

func NewPurchaseService(ledger *Ledger, mentor *ai.Mentor) PurchaseService {
	return &purchaseService{ledger: ledger, mentor: mentor}
}

func (s *purchaseService) Simulate(ctx context.Context, input *models.PurchaseRequest) (*models.PurchaseAdvice, error) {
	proposal, err := parseProposal(input)
	if err != nil {
		return nil, err
	}

	var ec ai.Context
	err = s.ledger.Read(func(st *state.Store) error {
		var err error
		ec, err = simulateIn(st, proposal)
		return err
	})
	if err != nil {
		return nil, err
	}

	// объяснение идет по сети, замок к этому моменту уже отпущен
	advice, source := s.mentor.Explain(ctx, ec)
	return &models.PurchaseAdvice{
		Result:       ec.Result,
		Advice:       advice,
		AdviceSource: source,
	}, nil
}

// Confirm оценивает и записывает покупку под одним замком, вердикт соответствует записанному состоянию
func (s *purchaseService) Confirm(ctx context.Context, input *models.PurchaseRequest) (*models.PurchaseConfirmation, error) {
	proposal, err := parseProposal(input)
	if err != nil {
		return nil, err
	}

	confirmation := &models.PurchaseConfirmation{}
	err = s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		ec, err := simulateIn(st, proposal)
		if err != nil {
			return nil, err
		}
		confirmation.Result = ec.Result

		tx, persist, err := recordIn(st, models.Transaction{
			Category:    proposal.Category,
			Amount:      proposal.Amount,
			Description: proposal.Description,
		})
		if err != nil {
			return nil, err
		}
		confirmation.Transaction = tx
		return persist, nil
	})
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

// parseProposal покупка идет из needs или wants; savings не тратится, а пополняется
func parseProposal(input *models.PurchaseRequest) (models.PurchaseProposal, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return models.PurchaseProposal{}, err
	}
	if category == models.CategorySavings {
		return models.PurchaseProposal{}, fmt.Errorf("%w: purchases are paid from needs or wants, not %s", models.ErrUnknownCategory, category)
	}
	return models.PurchaseProposal{
		Description: input.Description,
		Category:    category,
		Amount:      input.Amount,
	}, nil
}

func simulateIn(st *state.Store, proposal models.PurchaseProposal) (ai.Context, error) {
	plan, err := st.Plan()
	if err != nil {
		return ai.Context{}, err
	}
	view, err := st.View()
	if err != nil {
		return ai.Context{}, err
	}
	result, err := simulator.Simulate(proposal, plan, view)
	if err != nil {
		return ai.Context{}, err
	}
	if income := st.Income(); income != nil {
		result.Currency = income.Currency
	}
	return ai.Context{Result: result, Income: plan.Income, Goal: view.Goal}, nil
}
