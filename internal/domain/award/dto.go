package award

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRateRequest struct {
	BaseRate                decimal.Decimal `json:"base_rate"`
	EveningMultiplier       decimal.Decimal `json:"evening_multiplier"`
	NightMultiplier         decimal.Decimal `json:"night_multiplier"`
	SaturdayMultiplier      decimal.Decimal `json:"saturday_multiplier"`
	SundayMultiplier        decimal.Decimal `json:"sunday_multiplier"`
	PublicHolidayMultiplier decimal.Decimal `json:"public_holiday_multiplier"`
	OvertimeMultiplier      decimal.Decimal `json:"overtime_multiplier"`
}

func (r *CreateRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.BaseRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_rate", Message: "must be positive"})
	}

	multipliers := map[string]decimal.Decimal{
		"evening_multiplier":        r.EveningMultiplier,
		"night_multiplier":          r.NightMultiplier,
		"saturday_multiplier":       r.SaturdayMultiplier,
		"sunday_multiplier":         r.SundayMultiplier,
		"public_holiday_multiplier": r.PublicHolidayMultiplier,
		"overtime_multiplier":       r.OvertimeMultiplier,
	}
	for field, m := range multipliers {
		if m.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateResponse struct {
	ID                      string          `json:"id"`
	CompanyID               string          `json:"company_id"`
	BaseRate                decimal.Decimal `json:"base_rate"`
	EveningMultiplier       decimal.Decimal `json:"evening_multiplier"`
	NightMultiplier         decimal.Decimal `json:"night_multiplier"`
	SaturdayMultiplier      decimal.Decimal `json:"saturday_multiplier"`
	SundayMultiplier        decimal.Decimal `json:"sunday_multiplier"`
	PublicHolidayMultiplier decimal.Decimal `json:"public_holiday_multiplier"`
	OvertimeMultiplier      decimal.Decimal `json:"overtime_multiplier"`
	IsActive                bool            `json:"is_active"`
	CreatedAt               string          `json:"created_at"`
}
