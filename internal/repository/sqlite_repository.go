package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// в sqlite деньги лежат строками (без потерь точности), время - RFC3339 в UTC

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type sqliteProfileRepository struct {
	db *sql.DB
}

func (r *sqliteProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	query := `
		SELECT income, period, currency, ratio_needs, ratio_wants, ratio_savings, income_updated_at
		FROM profile
		WHERE id = 1
	`

	var (
		p         models.Profile
		income    decimal.NullDecimal
		period    string
		currency  string
		updatedAt sql.NullString
	)
	err := GetTxOrDB(ctx, r.db).QueryRowContext(ctx, query).Scan(
		&income, &period, &currency,
		&p.Ratios.Needs, &p.Ratios.Wants, &p.Ratios.Savings,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if income.Valid {
		p.Income = &models.Income{Amount: income.Decimal, Period: models.Period(period), Currency: currency}
		at, err := parseNullTime(updatedAt)
		if err != nil {
			return nil, err
		}
		if at != nil {
			p.Income.UpdatedAt = *at
		}
	}
	return &p, nil
}

func (r *sqliteProfileRepository) Save(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profile (id, income, period, currency, ratio_needs, ratio_wants, ratio_savings, income_updated_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			income = excluded.income,
			period = excluded.period,
			currency = excluded.currency,
			ratio_needs = excluded.ratio_needs,
			ratio_wants = excluded.ratio_wants,
			ratio_savings = excluded.ratio_savings,
			income_updated_at = excluded.income_updated_at,
			updated_at = excluded.updated_at
	`

	income, period, currency, incomeUpdatedAt := profileColumns(p)
	_, err := GetTxOrDB(ctx, r.db).ExecContext(ctx, query,
		income, period, currency,
		p.Ratios.Needs, p.Ratios.Wants, p.Ratios.Savings,
		nullTime(incomeUpdatedAt), formatTime(time.Now()),
	)
	return err
}

type sqliteExpenseRepository struct {
	db *sql.DB
}

func (r *sqliteExpenseRepository) Save(ctx context.Context, e *models.Expense) error {
	return NewSQLTxManager(r.db).WithTx(ctx, func(ctx context.Context) error {
		db := GetTxOrDB(ctx, r.db)
		if _, err := db.ExecContext(ctx, `DELETE FROM expenses WHERE LOWER(name) = LOWER(?)`, e.Name); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO expenses (id, name, category, amount, period, is_fixed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), e.Name, string(e.Category), e.Amount.String(), string(e.Period), e.IsFixed, formatTime(e.CreatedAt),
		)
		return err
	})
}

func (r *sqliteExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	rows, err := GetTxOrDB(ctx, r.db).QueryContext(ctx, `
		SELECT id, name, category, amount, period, is_fixed, created_at
		FROM expenses
		ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e                        models.Expense
			id, category, period, at string
		)
		if err := rows.Scan(&id, &e.Name, &category, &e.Amount, &period, &e.IsFixed, &at); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		e.Category = models.Category(category)
		e.Period = models.Period(period)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

type sqliteTransactionRepository struct {
	db *sql.DB
}

func (r *sqliteTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	_, err := GetTxOrDB(ctx, r.db).ExecContext(ctx, `
		INSERT INTO transactions (id, seq, date, category, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), tx.Seq, formatTime(tx.Date), string(tx.Category), tx.Amount.String(), tx.Description, formatTime(tx.CreatedAt),
	)
	return err
}

func (r *sqliteTransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := GetTxOrDB(ctx, r.db).QueryContext(ctx, `
		SELECT id, seq, date, category, amount, description, created_at
		FROM transactions
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var transactions []models.Transaction
	for rows.Next() {
		var (
			tx                            models.Transaction
			id, date, category, createdAt string
		)
		if err := rows.Scan(&id, &tx.Seq, &date, &category, &tx.Amount, &tx.Description, &createdAt); err != nil {
			return nil, err
		}
		if tx.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tx.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		if tx.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tx.Category = models.Category(category)
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

type sqliteGoalRepository struct {
	db *sql.DB
}

func (r *sqliteGoalRepository) Get(ctx context.Context) (*models.SavingsGoal, error) {
	var (
		goal                     models.SavingsGoal
		id, createdAt, updatedAt string
		targetDate               sql.NullString
	)
	err := GetTxOrDB(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM savings_goals
		ORDER BY updated_at DESC
		LIMIT 1`).Scan(
		&id, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &targetDate, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if goal.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if goal.TargetDate, err = parseNullTime(targetDate); err != nil {
		return nil, err
	}
	if goal.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if goal.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *sqliteGoalRepository) Save(ctx context.Context, g *models.SavingsGoal) error {
	return NewSQLTxManager(r.db).WithTx(ctx, func(ctx context.Context) error {
		db := GetTxOrDB(ctx, r.db)
		if _, err := db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id <> ?`, g.ID.String()); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO savings_goals (id, name, target_amount, current_amount, target_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				target_amount = excluded.target_amount,
				current_amount = excluded.current_amount,
				target_date = excluded.target_date,
				updated_at = excluded.updated_at`,
			g.ID.String(), g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
			nullTime(g.TargetDate), formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
		)
		return err
	})
}
