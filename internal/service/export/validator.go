package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// Timesheets longer than this get a long_shift warning.
const longShiftHours = 12.0

// Validator classifies the timesheets of a pay period ahead of export.
// Findings are returned as data; only infrastructure failures come back
// as errors.
type Validator struct {
	periods    payperiod.Repository
	timesheets timesheet.Repository
}

func NewValidator(periods payperiod.Repository, timesheets timesheet.Repository) *Validator {
	return &Validator{periods: periods, timesheets: timesheets}
}

// Validate fetches every timesheet inside the pay period window and
// classifies each row. Unapproved and already-exported rows are dropped
// from the output set; rows with a missing email stay in it so the
// operator can see what needs fixing before retrying.
func (v *Validator) Validate(ctx context.Context, companyID, payPeriodID string, mappings map[string]mapping.Mapping) (export.ValidationResult, error) {
	var result export.ValidationResult

	period, err := v.periods.GetByID(ctx, payPeriodID, companyID)
	if err != nil {
		if errors.Is(err, payperiod.ErrPeriodNotFound) {
			// Terminal outcome, not a partial one.
			result.Errors = append(result.Errors, export.Issue{
				Code:    export.IssueInvalidDates,
				Message: "pay period not found",
			})
			return result, nil
		}
		return result, err
	}

	rows, err := v.timesheets.FetchForExport(ctx, companyID, period.StartDate, period.EndDate)
	if err != nil {
		return result, fmt.Errorf("failed to fetch timesheets: %w", err)
	}

	seen := make(map[string]bool)
	for _, ts := range rows {
		date := ts.Date

		if ts.Status != timesheet.StatusApproved {
			result.Errors = append(result.Errors, export.Issue{
				Code:         export.IssueUnapproved,
				Message:      fmt.Sprintf("timesheet for %s on %s is not approved", ts.EmployeeName, date.Format("2006-01-02")),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
			continue
		}

		if ts.IsLocked && ts.ExportedAt != nil {
			result.Warnings = append(result.Warnings, export.Issue{
				Code:         export.IssueDuplicate,
				Message:      fmt.Sprintf("timesheet for %s on %s was already exported", ts.EmployeeName, date.Format("2006-01-02")),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
			continue
		}

		if validator.IsEmpty(ts.EmployeeEmail) {
			// Row stays in the output set: it becomes exportable once
			// the email is fixed, unlike the cases above.
			result.Errors = append(result.Errors, export.Issue{
				Code:         export.IssueMissingIdentifier,
				Message:      fmt.Sprintf("employee %s has no email address", ts.EmployeeName),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
		}

		if _, ok := mappings[ts.ShiftType]; !ok {
			result.Errors = append(result.Errors, export.Issue{
				Code:         export.IssueMissingMapping,
				Message:      fmt.Sprintf("no payroll mapping configured for shift type %q", ts.ShiftType),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
		}

		key := ts.EmployeeID + "|" + date.Format("2006-01-02")
		if seen[key] {
			result.Warnings = append(result.Warnings, export.Issue{
				Code:         export.IssueOverlap,
				Message:      fmt.Sprintf("multiple timesheets for %s on %s", ts.EmployeeName, date.Format("2006-01-02")),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
		}
		seen[key] = true

		if ts.TotalHours > longShiftHours {
			result.Warnings = append(result.Warnings, export.Issue{
				Code:         export.IssueLongShift,
				Message:      fmt.Sprintf("timesheet for %s on %s exceeds %.0f hours", ts.EmployeeName, date.Format("2006-01-02"), longShiftHours),
				EmployeeName: ts.EmployeeName,
				Date:         &date,
			})
		}

		result.Timesheets = append(result.Timesheets, ts)
	}

	result.IsValid = len(result.Errors) == 0
	return result, nil
}
