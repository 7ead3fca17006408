package repository

import (
	"context"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

// db возвращает транзакцию из контекста или pool
func (r *transactionRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, seq, date, category, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db(ctx).Exec(ctx, query,
		tx.ID, tx.Seq, tx.Date, tx.Category, tx.Amount, tx.Description, tx.CreatedAt,
	)
	return err
}

func (r *transactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, seq, date, category, amount, description, created_at
		FROM transactions
		ORDER BY seq
	`

	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.Seq, &tx.Date, &tx.Category, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
