package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/repository"
)

var errDiskFull = errors.New("disk full")

// memDB хранилище в памяти, fail включает ошибку записи
type memDB struct {
	profile      *models.Profile
	expenses     []models.Expense
	transactions []models.Transaction
	goal         *models.SavingsGoal
	fail         bool
}

func (db *memDB) repos() *repository.Repositories {
	return &repository.Repositories{
		TxManager:   memTx{},
		Profile:     memProfile{db},
		Expense:     memExpense{db},
		Transaction: memTransaction{db},
		Goal:        memGoal{db},
	}
}

type memTx struct{}

func (memTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memProfile struct{ db *memDB }

func (r memProfile) Get(context.Context) (*models.Profile, error) { return r.db.profile, nil }

func (r memProfile) Save(_ context.Context, p *models.Profile) error {
	if r.db.fail {
		return errDiskFull
	}
	cp := *p
	r.db.profile = &cp
	return nil
}

type memExpense struct{ db *memDB }

func (r memExpense) List(context.Context) ([]models.Expense, error) { return r.db.expenses, nil }

func (r memExpense) Save(_ context.Context, e *models.Expense) error {
	if r.db.fail {
		return errDiskFull
	}
	kept := r.db.expenses[:0]
	for _, existing := range r.db.expenses {
		if !strings.EqualFold(existing.Name, e.Name) {
			kept = append(kept, existing)
		}
	}
	r.db.expenses = append(kept, *e)
	return nil
}

type memTransaction struct{ db *memDB }

func (r memTransaction) List(context.Context) ([]models.Transaction, error) {
	return r.db.transactions, nil
}

func (r memTransaction) Create(_ context.Context, tx *models.Transaction) error {
	if r.db.fail {
		return errDiskFull
	}
	r.db.transactions = append(r.db.transactions, *tx)
	return nil
}

type memGoal struct{ db *memDB }

func (r memGoal) Get(context.Context) (*models.SavingsGoal, error) { return r.db.goal, nil }

func (r memGoal) Save(_ context.Context, g *models.SavingsGoal) error {
	if r.db.fail {
		return errDiskFull
	}
	cp := *g
	r.db.goal = &cp
	return nil
}
