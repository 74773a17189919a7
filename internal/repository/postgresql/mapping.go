package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type mappingRepository struct {
	db *database.DB
}

func NewMappingRepository(db *database.DB) mapping.Repository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Create(ctx context.Context, m mapping.Mapping) (mapping.Mapping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_mappings (company_id, shift_type, earning_code, description, multiplier, condition)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, shift_type, earning_code, description, multiplier, condition, created_at, updated_at
	`

	var created mapping.Mapping
	err := q.QueryRow(ctx, query,
		m.CompanyID, m.ShiftType, m.EarningCode, m.Description, m.Multiplier, m.Condition,
	).Scan(
		&created.ID, &created.CompanyID, &created.ShiftType, &created.EarningCode,
		&created.Description, &created.Multiplier, &created.Condition,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_mapping_shift_type") {
			return mapping.Mapping{}, mapping.ErrShiftTypeExists
		}
		return mapping.Mapping{}, fmt.Errorf("failed to create payroll mapping: %w", err)
	}

	return created, nil
}

func (r *mappingRepository) GetByID(ctx context.Context, id string, companyID string) (mapping.Mapping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, shift_type, earning_code, description, multiplier, condition, created_at, updated_at
		FROM payroll_mappings
		WHERE id = $1 AND company_id = $2
	`

	var m mapping.Mapping
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&m.ID, &m.CompanyID, &m.ShiftType, &m.EarningCode,
		&m.Description, &m.Multiplier, &m.Condition, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return mapping.Mapping{}, mapping.ErrMappingNotFound
		}
		return mapping.Mapping{}, fmt.Errorf("failed to get payroll mapping: %w", err)
	}

	return m, nil
}

func (r *mappingRepository) ListByCompanyID(ctx context.Context, companyID string) ([]mapping.Mapping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, shift_type, earning_code, description, multiplier, condition, created_at, updated_at
		FROM payroll_mappings
		WHERE company_id = $1
		ORDER BY shift_type
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll mappings: %w", err)
	}
	defer rows.Close()

	var mappings []mapping.Mapping
	for rows.Next() {
		var m mapping.Mapping
		err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ShiftType, &m.EarningCode,
			&m.Description, &m.Multiplier, &m.Condition, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll mapping: %w", err)
		}
		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}

func (r *mappingRepository) Update(ctx context.Context, companyID string, req mapping.UpdateMappingRequest) error {
	q := GetQuerier(ctx, r.db)

	// Nil keeps the stored value; an empty string clears it. COALESCE
	// alone cannot express the clear for the nullable text fields.
	query := `
		UPDATE payroll_mappings SET
			earning_code = COALESCE($3, earning_code),
			description = CASE WHEN $4::text IS NULL THEN description WHEN $4 = '' THEN NULL ELSE $4 END,
			multiplier = COALESCE($5, multiplier),
			condition = CASE WHEN $6::text IS NULL THEN condition WHEN $6 = '' THEN NULL ELSE $6 END,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, req.ID, companyID, req.EarningCode, req.Description, req.Multiplier, req.Condition)
	if err != nil {
		return fmt.Errorf("failed to update payroll mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapping.ErrMappingNotFound
	}

	return nil
}

func (r *mappingRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_mappings WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapping.ErrMappingNotFound
	}

	return nil
}
