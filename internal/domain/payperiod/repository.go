package payperiod

import (
	"context"
	"time"
)

// Repository defines data access for pay periods.
type Repository interface {
	Create(ctx context.Context, p Period) (Period, error)
	GetByID(ctx context.Context, id string, companyID string) (Period, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Period, error)
	// HasOverlap reports whether any existing period for the company
	// intersects [start, end].
	HasOverlap(ctx context.Context, companyID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status Status) error
	Close(ctx context.Context, id string, companyID string, closedBy string, closedAt time.Time) error
}
