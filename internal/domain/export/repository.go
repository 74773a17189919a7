package export

import (
	"context"
	"time"
)

// Repository defines data access for payroll export records.
type Repository interface {
	Create(ctx context.Context, e Export) (Export, error)
	GetByID(ctx context.Context, id string, companyID string) (Export, error)
	ListByPayPeriodID(ctx context.Context, payPeriodID string, companyID string) ([]Export, error)
	// Void marks the export voided. Returns ErrAlreadyVoided if the
	// record is not in generated status.
	Void(ctx context.Context, id string, companyID string, reason string, voidedBy string, voidedAt time.Time) error
}
