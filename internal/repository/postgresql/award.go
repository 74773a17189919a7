package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type awardRepository struct {
	db *database.DB
}

func NewAwardRepository(db *database.DB) award.Repository {
	return &awardRepository{db: db}
}

func (r *awardRepository) Create(ctx context.Context, rate award.Rate) (award.Rate, error) {
	q := GetQuerier(ctx, r.db)

	// Supersede, never delete: the previous active rate is deactivated
	// in the same transaction the caller runs this in.
	deactivate := `
		UPDATE award_rates SET is_active = FALSE, updated_at = NOW()
		WHERE company_id = $1 AND is_active = TRUE
	`
	if _, err := q.Exec(ctx, deactivate, rate.CompanyID); err != nil {
		return award.Rate{}, fmt.Errorf("failed to deactivate prior award rate: %w", err)
	}

	query := `
		INSERT INTO award_rates (
			company_id, base_rate, evening_multiplier, night_multiplier,
			saturday_multiplier, sunday_multiplier, public_holiday_multiplier,
			overtime_multiplier, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9)
		RETURNING id, company_id, base_rate, evening_multiplier, night_multiplier,
			saturday_multiplier, sunday_multiplier, public_holiday_multiplier,
			overtime_multiplier, is_active, created_by, created_at, updated_at
	`

	var created award.Rate
	err := q.QueryRow(ctx, query,
		rate.CompanyID, rate.BaseRate, rate.EveningMultiplier, rate.NightMultiplier,
		rate.SaturdayMultiplier, rate.SundayMultiplier, rate.PublicHolidayMultiplier,
		rate.OvertimeMultiplier, rate.CreatedBy,
	).Scan(
		&created.ID, &created.CompanyID, &created.BaseRate, &created.EveningMultiplier,
		&created.NightMultiplier, &created.SaturdayMultiplier, &created.SundayMultiplier,
		&created.PublicHolidayMultiplier, &created.OvertimeMultiplier, &created.IsActive,
		&created.CreatedBy, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return award.Rate{}, fmt.Errorf("failed to create award rate: %w", err)
	}

	return created, nil
}

func (r *awardRepository) GetActive(ctx context.Context, companyID string) (award.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, base_rate, evening_multiplier, night_multiplier,
			saturday_multiplier, sunday_multiplier, public_holiday_multiplier,
			overtime_multiplier, is_active, created_by, created_at, updated_at
		FROM award_rates
		WHERE company_id = $1 AND is_active = TRUE
	`

	var rate award.Rate
	err := q.QueryRow(ctx, query, companyID).Scan(
		&rate.ID, &rate.CompanyID, &rate.BaseRate, &rate.EveningMultiplier,
		&rate.NightMultiplier, &rate.SaturdayMultiplier, &rate.SundayMultiplier,
		&rate.PublicHolidayMultiplier, &rate.OvertimeMultiplier, &rate.IsActive,
		&rate.CreatedBy, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return award.Rate{}, award.ErrRateNotFound
		}
		return award.Rate{}, fmt.Errorf("failed to get active award rate: %w", err)
	}

	return rate, nil
}

func (r *awardRepository) ListByCompanyID(ctx context.Context, companyID string) ([]award.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, base_rate, evening_multiplier, night_multiplier,
			saturday_multiplier, sunday_multiplier, public_holiday_multiplier,
			overtime_multiplier, is_active, created_by, created_at, updated_at
		FROM award_rates
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list award rates: %w", err)
	}
	defer rows.Close()

	var rates []award.Rate
	for rows.Next() {
		var rate award.Rate
		err := rows.Scan(
			&rate.ID, &rate.CompanyID, &rate.BaseRate, &rate.EveningMultiplier,
			&rate.NightMultiplier, &rate.SaturdayMultiplier, &rate.SundayMultiplier,
			&rate.PublicHolidayMultiplier, &rate.OvertimeMultiplier, &rate.IsActive,
			&rate.CreatedBy, &rate.CreatedAt, &rate.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan award rate: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, rows.Err()
}
