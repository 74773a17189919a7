package export

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider enum - supported payroll file dialects.
type Provider string

const (
	ProviderGeneric Provider = "generic"
	ProviderXero    Provider = "xero"
	ProviderKeyPay  Provider = "keypay"
	ProviderMYOB    Provider = "myob"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderGeneric, ProviderXero, ProviderKeyPay, ProviderMYOB:
		return true
	}
	return false
}

// Status enum
type Status string

const (
	StatusGenerated Status = "generated"
	StatusVoided    Status = "voided"
)

// Summary - totals attached to a generated export.
type Summary struct {
	TotalHours    float64
	EmployeeCount int
	LineCount     int
	TotalEarnings *decimal.Decimal
}

// Export - the immutable artifact record for one successful generation
// cycle. The only mutation ever applied is the void transition.
type Export struct {
	ID          string
	PayPeriodID string
	CompanyID   string
	Provider    Provider
	FilePath    string
	Summary     Summary
	Status      Status
	CreatedBy   string
	CreatedAt   time.Time
	VoidReason  *string
	VoidedBy    *string
	VoidedAt    *time.Time
}
