package service

import (
	"context"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/state"
)

type TransactionService interface {
	AddExpense(ctx context.Context, input *models.ExpenseCreate) (*models.Expense, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	Record(ctx context.Context, input *models.TransactionCreate) (*models.Transaction, error)
	History(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error)
}

type transactionService struct {
	ledger *Ledger
}

func NewTransactionService(ledger *Ledger) TransactionService {
	return &transactionService{ledger: ledger}
}

func (s *transactionService) AddExpense(ctx context.Context, input *models.ExpenseCreate) (*models.Expense, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	var expense *models.Expense
	err = s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		var err error
		expense, err = st.AddExpense(models.Expense{
			Name:     input.Name,
			Category: category,
			Amount:   input.Amount,
			Period:   input.Period,
			IsFixed:  input.IsFixed,
		})
		if err != nil {
			return nil, err
		}
		saved := *expense
		return func(ctx context.Context, repos *repository.Repositories) error {
			return repos.Expense.Save(ctx, &saved)
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *transactionService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.ledger.Read(func(st *state.Store) error {
		expenses = st.Expenses()
		return nil
	})
	return expenses, err
}

// Record добавляет транзакцию в журнал; транзакция в savings сохраняется вместе с целью
func (s *transactionService) Record(ctx context.Context, input *models.TransactionCreate) (*models.Transaction, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		Category:    category,
		Amount:      input.Amount,
		Description: input.Description,
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}

	var recorded *models.Transaction
	err = s.ledger.Mutate(ctx, func(st *state.Store) (persistFunc, error) {
		var (
			persist persistFunc
			err     error
		)
		recorded, persist, err = recordIn(st, tx)
		return persist, err
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// recordIn проводит транзакцию через store и готовит ее запись в базу
func recordIn(st *state.Store, tx models.Transaction) (*models.Transaction, persistFunc, error) {
	recorded, err := st.RecordTransaction(tx)
	if err != nil {
		return nil, nil, err
	}

	saved := *recorded
	goal := st.Goal()
	return recorded, func(ctx context.Context, repos *repository.Repositories) error {
		if err := repos.Transaction.Create(ctx, &saved); err != nil {
			return err
		}
		if saved.Category == models.CategorySavings && goal != nil {
			return repos.Goal.Save(ctx, goal)
		}
		return nil
	}, nil
}

func (s *transactionService) History(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error) {
	if filter == nil {
		filter = &models.TransactionFilter{}
	}
	var history []models.Transaction
	err := s.ledger.Read(func(st *state.Store) error {
		history = st.History(*filter)
		return nil
	})
	if history == nil {
		history = []models.Transaction{}
	}
	return history, err
}
