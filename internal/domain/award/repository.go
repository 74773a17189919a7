package award

import "context"

// Repository defines data access for award rates.
// All methods take companyID to prevent cross-company data access.
type Repository interface {
	// Create inserts a new rate and deactivates the previously active one
	// for the company in the same statement batch.
	Create(ctx context.Context, rate Rate) (Rate, error)
	GetActive(ctx context.Context, companyID string) (Rate, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Rate, error)
}
