package repository

import (
	"context"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type expenseRepository struct {
	pool *pgxpool.Pool
	tx   TxManager
}

func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool, tx: NewTxManager(pool)}
}

func (r *expenseRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

func (r *expenseRepository) Save(ctx context.Context, e *models.Expense) error {
	return r.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM expenses WHERE LOWER(name) = LOWER($1)`, e.Name); err != nil {
			return err
		}

		query := `
			INSERT INTO expenses (id, name, category, amount, period, is_fixed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := r.db(ctx).Exec(ctx, query,
			e.ID, e.Name, e.Category, e.Amount, e.Period, e.IsFixed, e.CreatedAt,
		)
		return err
	})
}

func (r *expenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	query := `
		SELECT id, name, category, amount, period, is_fixed, created_at
		FROM expenses
		ORDER BY created_at, name
	`

	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Amount, &e.Period, &e.IsFixed, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
