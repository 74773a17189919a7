package shift

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PreviewRequest struct {
	Date            string `json:"date"`
	Start           string `json:"start_time"`
	End             string `json:"end_time"`
	BreakMinutes    int    `json:"break_minutes"`
	IsPublicHoliday bool   `json:"is_public_holiday"`
	IsOvertime      bool   `json:"is_overtime"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !validator.IsValidTime(r.Start) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid time (HH:MM)"})
	}
	if !validator.IsValidTime(r.End) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid time (HH:MM)"})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Entry converts the validated request to a calculator entry.
func (r *PreviewRequest) Entry() Entry {
	date, _ := time.Parse("2006-01-02", r.Date)
	return Entry{
		Date:            date,
		Start:           r.Start,
		End:             r.End,
		BreakMinutes:    r.BreakMinutes,
		IsPublicHoliday: r.IsPublicHoliday,
		IsOvertime:      r.IsOvertime,
	}
}

type PreviewResponse struct {
	TotalHours  float64 `json:"total_hours"`
	BreakHours  float64 `json:"break_hours"`
	WorkedHours float64 `json:"worked_hours"`

	BaseHours          float64 `json:"base_hours"`
	EveningHours       float64 `json:"evening_hours"`
	NightHours         float64 `json:"night_hours"`
	SaturdayHours      float64 `json:"saturday_hours"`
	SundayHours        float64 `json:"sunday_hours"`
	PublicHolidayHours float64 `json:"public_holiday_hours"`
	OvertimeHours      float64 `json:"overtime_hours"`

	BasePay          decimal.Decimal `json:"base_pay"`
	EveningPay       decimal.Decimal `json:"evening_pay"`
	NightPay         decimal.Decimal `json:"night_pay"`
	SaturdayPay      decimal.Decimal `json:"saturday_pay"`
	SundayPay        decimal.Decimal `json:"sunday_pay"`
	PublicHolidayPay decimal.Decimal `json:"public_holiday_pay"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	TotalPay         decimal.Decimal `json:"total_pay"`
}

func NewPreviewResponse(c *Calculation) PreviewResponse {
	return PreviewResponse{
		TotalHours:         c.TotalHours,
		BreakHours:         c.BreakHours,
		WorkedHours:        c.WorkedHours,
		BaseHours:          c.BaseHours,
		EveningHours:       c.EveningHours,
		NightHours:         c.NightHours,
		SaturdayHours:      c.SaturdayHours,
		SundayHours:        c.SundayHours,
		PublicHolidayHours: c.PublicHolidayHours,
		OvertimeHours:      c.OvertimeHours,
		BasePay:            c.BasePay,
		EveningPay:         c.EveningPay,
		NightPay:           c.NightPay,
		SaturdayPay:        c.SaturdayPay,
		SundayPay:          c.SundayPay,
		PublicHolidayPay:   c.PublicHolidayPay,
		OvertimePay:        c.OvertimePay,
		TotalPay:           c.TotalPay,
	}
}
