package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

func (r *profileRepository) Get(ctx context.Context) (*models.Profile, error) {
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
		updatedAt *time.Time
	)
	err := r.db(ctx).QueryRow(ctx, query).Scan(
		&income, &period, &currency,
		&p.Ratios.Needs, &p.Ratios.Wants, &p.Ratios.Savings,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if income.Valid {
		p.Income = &models.Income{Amount: income.Decimal, Period: models.Period(period), Currency: currency}
		if updatedAt != nil {
			p.Income.UpdatedAt = *updatedAt
		}
	}
	return &p, nil
}

func (r *profileRepository) Save(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profile (id, income, period, currency, ratio_needs, ratio_wants, ratio_savings, income_updated_at, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			income = EXCLUDED.income,
			period = EXCLUDED.period,
			currency = EXCLUDED.currency,
			ratio_needs = EXCLUDED.ratio_needs,
			ratio_wants = EXCLUDED.ratio_wants,
			ratio_savings = EXCLUDED.ratio_savings,
			income_updated_at = EXCLUDED.income_updated_at,
			updated_at = EXCLUDED.updated_at
	`

	income, period, currency, incomeUpdatedAt := profileColumns(p)
	_, err := r.db(ctx).Exec(ctx, query,
		income, period, currency,
		p.Ratios.Needs, p.Ratios.Wants, p.Ratios.Savings,
		incomeUpdatedAt, time.Now(),
	)
	return err
}

// profileColumns раскладывает необязательный доход по колонкам
func profileColumns(p *models.Profile) (decimal.NullDecimal, string, string, *time.Time) {
	if p.Income == nil {
		return decimal.NullDecimal{}, string(models.PeriodMonthly), "", nil
	}
	updatedAt := p.Income.UpdatedAt
	return decimal.NewNullDecimal(p.Income.Amount), string(p.Income.Period), p.Income.Currency, &updatedAt
}
