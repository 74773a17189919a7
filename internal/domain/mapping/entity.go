package mapping

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mapping ties a shift type classifier to a payroll provider earning code.
// Unique per (company, shift type). The engine consumes these read-only;
// they are maintained through the admin CRUD endpoints.
type Mapping struct {
	ID          string
	CompanyID   string
	ShiftType   string
	EarningCode string
	Description *string
	Multiplier  decimal.Decimal
	Condition   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
