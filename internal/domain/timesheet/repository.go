package timesheet

import (
	"context"
	"time"
)

// Repository defines the engine's access to timesheet rows.
type Repository interface {
	// FetchForExport returns every row for the company whose date falls
	// within [from, to] inclusive, with employee name/email resolved.
	FetchForExport(ctx context.Context, companyID string, from, to time.Time) ([]ForExport, error)

	// LockForExport marks the given rows locked and exported in a single
	// conditional update and returns the ids it actually locked. Rows
	// already locked are left untouched and absent from the result, which
	// is what makes concurrent export attempts at-most-once.
	LockForExport(ctx context.Context, ids []string, payPeriodID string, exportedAt time.Time) ([]string, error)

	// Unlock clears the lock on one row. Exceptional path, always audited
	// by the caller.
	Unlock(ctx context.Context, id string, companyID string) error

	GetByID(ctx context.Context, id string, companyID string) (ForExport, error)
}
