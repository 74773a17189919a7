package mapping

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateMappingRequest struct {
	ShiftType   string           `json:"shift_type"`
	EarningCode string           `json:"earning_code"`
	Description *string          `json:"description,omitempty"`
	Multiplier  *decimal.Decimal `json:"multiplier,omitempty"`
	Condition   *string          `json:"condition,omitempty"`
}

func (r *CreateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftType) {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "is required"})
	}
	if validator.IsEmpty(r.EarningCode) {
		errs = append(errs, validator.ValidationError{Field: "earning_code", Message: "is required"})
	}
	if r.Multiplier != nil && !r.Multiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateMappingRequest patches a mapping. Omitted fields keep their
// stored values; sending description or condition as an empty string
// clears them.
type UpdateMappingRequest struct {
	ID          string           `json:"-"`
	EarningCode *string          `json:"earning_code,omitempty"`
	Description *string          `json:"description,omitempty"`
	Multiplier  *decimal.Decimal `json:"multiplier,omitempty"`
	Condition   *string          `json:"condition,omitempty"`
}

func (r *UpdateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EarningCode != nil && validator.IsEmpty(*r.EarningCode) {
		errs = append(errs, validator.ValidationError{Field: "earning_code", Message: "must not be empty"})
	}
	if r.Multiplier != nil && !r.Multiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MappingResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	ShiftType   string          `json:"shift_type"`
	EarningCode string          `json:"earning_code"`
	Description *string         `json:"description,omitempty"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Condition   *string         `json:"condition,omitempty"`
}
