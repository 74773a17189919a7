package export

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateRequest struct {
	PayPeriodID string   `json:"-"`
	Provider    Provider `json:"provider"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Provider.Valid() {
		errs = append(errs, validator.ValidationError{Field: "provider", Message: "must be one of generic, xero, keypay, myob"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VoidRequest struct {
	ExportID string `json:"-"`
	Reason   string `json:"reason"`
}

func (r *VoidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UnlockRequest struct {
	TimesheetID string `json:"-"`
	Reason      string `json:"reason"`
}

func (r *UnlockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryResponse struct {
	TotalHours    float64          `json:"total_hours"`
	EmployeeCount int              `json:"employee_count"`
	LineCount     int              `json:"line_count"`
	TotalEarnings *decimal.Decimal `json:"total_earnings,omitempty"`
}

type ExportResponse struct {
	ID          string          `json:"id"`
	PayPeriodID string          `json:"pay_period_id"`
	Provider    string          `json:"provider"`
	FilePath    string          `json:"file_path"`
	Summary     SummaryResponse `json:"summary"`
	Status      string          `json:"status"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
	VoidReason  *string         `json:"void_reason,omitempty"`
	VoidedBy    *string         `json:"voided_by,omitempty"`
	VoidedAt    *string         `json:"voided_at,omitempty"`
}

func NewExportResponse(e Export) ExportResponse {
	resp := ExportResponse{
		ID:          e.ID,
		PayPeriodID: e.PayPeriodID,
		Provider:    string(e.Provider),
		FilePath:    e.FilePath,
		Summary: SummaryResponse{
			TotalHours:    e.Summary.TotalHours,
			EmployeeCount: e.Summary.EmployeeCount,
			LineCount:     e.Summary.LineCount,
			TotalEarnings: e.Summary.TotalEarnings,
		},
		Status:     string(e.Status),
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		VoidReason: e.VoidReason,
		VoidedBy:   e.VoidedBy,
	}
	if e.VoidedAt != nil {
		str := e.VoidedAt.Format(time.RFC3339)
		resp.VoidedAt = &str
	}
	return resp
}

type TimesheetRowResponse struct {
	ID            string  `json:"id"`
	EmployeeName  string  `json:"employee_name"`
	EmployeeEmail string  `json:"employee_email"`
	Date          string  `json:"date"`
	TotalHours    float64 `json:"total_hours"`
	ShiftType     string  `json:"shift_type"`
}

type ValidationResultResponse struct {
	IsValid    bool                   `json:"is_valid"`
	Errors     []Issue                `json:"errors"`
	Warnings   []Issue                `json:"warnings"`
	Timesheets []TimesheetRowResponse `json:"timesheets"`
}

func NewValidationResultResponse(r ValidationResult) ValidationResultResponse {
	resp := ValidationResultResponse{
		IsValid:    r.IsValid,
		Errors:     r.Errors,
		Warnings:   r.Warnings,
		Timesheets: make([]TimesheetRowResponse, 0, len(r.Timesheets)),
	}
	if resp.Errors == nil {
		resp.Errors = []Issue{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []Issue{}
	}
	for _, ts := range r.Timesheets {
		resp.Timesheets = append(resp.Timesheets, TimesheetRowResponse{
			ID:            ts.ID,
			EmployeeName:  ts.EmployeeName,
			EmployeeEmail: ts.EmployeeEmail,
			Date:          ts.Date.Format("2006-01-02"),
			TotalHours:    ts.TotalHours,
			ShiftType:     ts.ShiftType,
		})
	}
	return resp
}

type DownloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
