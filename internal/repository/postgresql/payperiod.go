package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.Repository {
	return &payPeriodRepository{db: db}
}

func (r *payPeriodRepository) Create(ctx context.Context, p payperiod.Period) (payperiod.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (company_id, start_date, end_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, start_date, end_date, status, created_by, closed_at, closed_by, created_at, updated_at
	`

	var created payperiod.Period
	err := q.QueryRow(ctx, query, p.CompanyID, p.StartDate, p.EndDate, p.Status, p.CreatedBy).Scan(
		&created.ID, &created.CompanyID, &created.StartDate, &created.EndDate,
		&created.Status, &created.CreatedBy, &created.ClosedAt, &created.ClosedBy,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payperiod.Period{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return created, nil
}

func (r *payPeriodRepository) GetByID(ctx context.Context, id string, companyID string) (payperiod.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, status, created_by, closed_at, closed_by, created_at, updated_at
		FROM pay_periods
		WHERE id = $1 AND company_id = $2
	`

	var p payperiod.Period
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Status,
		&p.CreatedBy, &p.ClosedAt, &p.ClosedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.Period{}, payperiod.ErrPeriodNotFound
		}
		return payperiod.Period{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return p, nil
}

func (r *payPeriodRepository) ListByCompanyID(ctx context.Context, companyID string) ([]payperiod.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, status, created_by, closed_at, closed_by, created_at, updated_at
		FROM pay_periods
		WHERE company_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payperiod.Period
	for rows.Next() {
		var p payperiod.Period
		err := rows.Scan(
			&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Status,
			&p.CreatedBy, &p.ClosedAt, &p.ClosedBy, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *payPeriodRepository) HasOverlap(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM pay_periods
			WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pay period overlap: %w", err)
	}

	return exists, nil
}

func (r *payPeriodRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payperiod.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID, status)
	if err != nil {
		return fmt.Errorf("failed to update pay period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrPeriodNotFound
	}

	return nil
}

func (r *payPeriodRepository) Close(ctx context.Context, id string, companyID string, closedBy string, closedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods SET status = $3, closed_by = $4, closed_at = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status <> $3
	`

	tag, err := q.Exec(ctx, query, id, companyID, payperiod.StatusClosed, closedBy, closedAt)
	if err != nil {
		return fmt.Errorf("failed to close pay period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrPeriodNotFound
	}

	return nil
}
