package repository

import (
	"context"
	"errors"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalRepository struct {
	pool *pgxpool.Pool
	tx   TxManager
}

func NewGoalRepository(pool *pgxpool.Pool) GoalRepository {
	return &goalRepository{pool: pool, tx: NewTxManager(pool)}
}

func (r *goalRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

func (r *goalRepository) Get(ctx context.Context) (*models.SavingsGoal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM savings_goals
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var goal models.SavingsGoal
	err := r.db(ctx).QueryRow(ctx, query).Scan(
		&goal.ID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
		&goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Save(ctx context.Context, g *models.SavingsGoal) error {
	return r.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM savings_goals WHERE id <> $1`, g.ID); err != nil {
			return err
		}

		query := `
			INSERT INTO savings_goals (id, name, target_amount, current_amount, target_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				target_amount = EXCLUDED.target_amount,
				current_amount = EXCLUDED.current_amount,
				target_date = EXCLUDED.target_date,
				updated_at = EXCLUDED.updated_at
		`
		_, err := r.db(ctx).Exec(ctx, query,
			g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate, g.CreatedAt, g.UpdatedAt,
		)
		return err
	})
}
