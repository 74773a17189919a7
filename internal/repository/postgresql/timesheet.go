package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) FetchForExport(ctx context.Context, companyID string, from, to time.Time) ([]timesheet.ForExport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, e.name, e.email, t.work_date,
			to_char(t.clock_in, 'HH24:MI'), to_char(t.clock_out, 'HH24:MI'),
			t.break_minutes, t.total_hours, t.status, t.is_locked, t.exported_at, t.shift_type
		FROM timesheets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.company_id = $1 AND t.work_date BETWEEN $2 AND $3
		ORDER BY t.work_date, e.name, t.clock_in
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timesheets for export: %w", err)
	}
	defer rows.Close()

	var result []timesheet.ForExport
	for rows.Next() {
		var ts timesheet.ForExport
		err := rows.Scan(
			&ts.ID, &ts.EmployeeID, &ts.EmployeeName, &ts.EmployeeEmail, &ts.Date,
			&ts.ClockIn, &ts.ClockOut, &ts.BreakMinutes, &ts.TotalHours,
			&ts.Status, &ts.IsLocked, &ts.ExportedAt, &ts.ShiftType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		result = append(result, ts)
	}

	return result, rows.Err()
}

// LockForExport claims rows for an export in one conditional update.
// The WHERE clause on is_locked is the at-most-once guarantee: of two
// racing exports only one can lock a given row, and the loser sees the
// row missing from the returned ids.
func (r *timesheetRepository) LockForExport(ctx context.Context, ids []string, payPeriodID string, exportedAt time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET is_locked = TRUE, exported_at = $2, pay_period_id = $3, updated_at = NOW()
		WHERE id = ANY($1) AND is_locked = FALSE
		RETURNING id
	`

	rows, err := q.Query(ctx, query, ids, exportedAt, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock timesheets: %w", err)
	}
	defer rows.Close()

	var locked []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan locked timesheet id: %w", err)
		}
		locked = append(locked, id)
	}

	return locked, rows.Err()
}

func (r *timesheetRepository) Unlock(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets SET is_locked = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to unlock timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.ForExport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, e.name, e.email, t.work_date,
			to_char(t.clock_in, 'HH24:MI'), to_char(t.clock_out, 'HH24:MI'),
			t.break_minutes, t.total_hours, t.status, t.is_locked, t.exported_at, t.shift_type
		FROM timesheets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	var ts timesheet.ForExport
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&ts.ID, &ts.EmployeeID, &ts.EmployeeName, &ts.EmployeeEmail, &ts.Date,
		&ts.ClockIn, &ts.ClockOut, &ts.BreakMinutes, &ts.TotalHours,
		&ts.Status, &ts.IsLocked, &ts.ExportedAt, &ts.ShiftType,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.ForExport{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.ForExport{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return ts, nil
}
