package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type exportRepository struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) export.Repository {
	return &exportRepository{db: db}
}

func (r *exportRepository) Create(ctx context.Context, e export.Export) (export.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_exports (
			id, pay_period_id, company_id, provider, file_path,
			total_hours, employee_count, line_count, total_earnings,
			status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	created := e
	err := q.QueryRow(ctx, query,
		e.ID, e.PayPeriodID, e.CompanyID, e.Provider, e.FilePath,
		e.Summary.TotalHours, e.Summary.EmployeeCount, e.Summary.LineCount, e.Summary.TotalEarnings,
		e.Status, e.CreatedBy,
	).Scan(&created.CreatedAt)
	if err != nil {
		return export.Export{}, fmt.Errorf("failed to create payroll export: %w", err)
	}

	return created, nil
}

func (r *exportRepository) GetByID(ctx context.Context, id string, companyID string) (export.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pay_period_id, company_id, provider, file_path,
			total_hours, employee_count, line_count, total_earnings,
			status, created_by, created_at, void_reason, voided_by, voided_at
		FROM payroll_exports
		WHERE id = $1 AND company_id = $2
	`

	var e export.Export
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.PayPeriodID, &e.CompanyID, &e.Provider, &e.FilePath,
		&e.Summary.TotalHours, &e.Summary.EmployeeCount, &e.Summary.LineCount, &e.Summary.TotalEarnings,
		&e.Status, &e.CreatedBy, &e.CreatedAt, &e.VoidReason, &e.VoidedBy, &e.VoidedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return export.Export{}, export.ErrExportNotFound
		}
		return export.Export{}, fmt.Errorf("failed to get payroll export: %w", err)
	}

	return e, nil
}

func (r *exportRepository) ListByPayPeriodID(ctx context.Context, payPeriodID string, companyID string) ([]export.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pay_period_id, company_id, provider, file_path,
			total_hours, employee_count, line_count, total_earnings,
			status, created_by, created_at, void_reason, voided_by, voided_at
		FROM payroll_exports
		WHERE pay_period_id = $1 AND company_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, payPeriodID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll exports: %w", err)
	}
	defer rows.Close()

	var exports []export.Export
	for rows.Next() {
		var e export.Export
		err := rows.Scan(
			&e.ID, &e.PayPeriodID, &e.CompanyID, &e.Provider, &e.FilePath,
			&e.Summary.TotalHours, &e.Summary.EmployeeCount, &e.Summary.LineCount, &e.Summary.TotalEarnings,
			&e.Status, &e.CreatedBy, &e.CreatedAt, &e.VoidReason, &e.VoidedBy, &e.VoidedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll export: %w", err)
		}
		exports = append(exports, e)
	}

	return exports, rows.Err()
}

func (r *exportRepository) Void(ctx context.Context, id string, companyID string, reason string, voidedBy string, voidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	// Conditional on status so a double void cannot overwrite the
	// original void metadata.
	query := `
		UPDATE payroll_exports
		SET status = $3, void_reason = $4, voided_by = $5, voided_at = $6
		WHERE id = $1 AND company_id = $2 AND status = $7
	`

	tag, err := q.Exec(ctx, query, id, companyID, export.StatusVoided, reason, voidedBy, voidedAt, export.StatusGenerated)
	if err != nil {
		return fmt.Errorf("failed to void payroll export: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return export.ErrAlreadyVoided
	}

	return nil
}
