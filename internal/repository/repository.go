package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository interface {
	// Get nil без ошибки если профиль еще не сохранялся
	Get(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
}

type ExpenseRepository interface {
	// Save заменяет расход с тем же именем (без учета регистра)
	Save(ctx context.Context, e *models.Expense) error
	List(ctx context.Context) ([]models.Expense, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	// List весь журнал в порядке seq
	List(ctx context.Context) ([]models.Transaction, error)
}

type GoalRepository interface {
	Get(ctx context.Context) (*models.SavingsGoal, error)
	// Save цель одна, остальные удаляются
	Save(ctx context.Context, g *models.SavingsGoal) error
}

type Repositories struct {
	TxManager   TxManager
	Profile     ProfileRepository
	Expense     ExpenseRepository
	Transaction TransactionRepository
	Goal        GoalRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		TxManager:   NewTxManager(pool),
		Profile:     NewProfileRepository(pool),
		Expense:     NewExpenseRepository(pool),
		Transaction: NewTransactionRepository(pool),
		Goal:        NewGoalRepository(pool),
	}
}

func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		TxManager:   NewSQLTxManager(db),
		Profile:     &sqliteProfileRepository{db: db},
		Expense:     &sqliteExpenseRepository{db: db},
		Transaction: &sqliteTransactionRepository{db: db},
		Goal:        &sqliteGoalRepository{db: db},
	}
}

// LoadSnapshot собирает все состояние одной транзакцией
func (r *Repositories) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := r.TxManager.WithTx(ctx, func(ctx context.Context) error {
		profile, err := r.Profile.Get(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if profile != nil {
			snap.Income = profile.Income
			snap.Ratios = profile.Ratios
		}
		if snap.Expenses, err = r.Expense.List(ctx); err != nil {
			return fmt.Errorf("load expenses: %w", err)
		}
		if snap.Transactions, err = r.Transaction.List(ctx); err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		if snap.Goal, err = r.Goal.Get(ctx); err != nil {
			return fmt.Errorf("load goal: %w", err)
		}
		return nil
	})
	return snap, err
}
