package award

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate - Hourly base rate and penalty multipliers for a company.
// Rates are never deleted; creating a new rate supersedes the current one.
type Rate struct {
	ID                      string
	CompanyID               string
	BaseRate                decimal.Decimal
	EveningMultiplier       decimal.Decimal
	NightMultiplier         decimal.Decimal
	SaturdayMultiplier      decimal.Decimal
	SundayMultiplier        decimal.Decimal
	PublicHolidayMultiplier decimal.Decimal
	OvertimeMultiplier      decimal.Decimal
	IsActive                bool
	CreatedBy               string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
