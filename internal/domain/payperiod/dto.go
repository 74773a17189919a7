package payperiod

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed window; call only after Validate.
func (r *CreatePeriodRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return start, end
}

type PeriodResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	CreatedBy string  `json:"created_by"`
	ClosedAt  *string `json:"closed_at,omitempty"`
	ClosedBy  *string `json:"closed_by,omitempty"`
}

func NewPeriodResponse(p Period) PeriodResponse {
	resp := PeriodResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
		CreatedBy: p.CreatedBy,
		ClosedBy:  p.ClosedBy,
	}
	if p.ClosedAt != nil {
		str := p.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &str
	}
	return resp
}
