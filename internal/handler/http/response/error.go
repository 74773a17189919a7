package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Export attempts blocked by validation carry the findings with them.
	var blocked *export.ValidationFailedError
	if errors.As(err, &blocked) {
		UnprocessableEntity(w, "Export blocked by validation errors", export.NewValidationResultResponse(blocked.Result))
		return
	}

	switch {
	// Award rate domain errors
	case errors.Is(err, award.ErrRateNotFound):
		NotFound(w, "Award rate not found")
	case errors.Is(err, award.ErrRateInUse):
		Conflict(w, "Award rate is referenced by a finalized export")

	// Mapping domain errors
	case errors.Is(err, mapping.ErrMappingNotFound):
		NotFound(w, "Payroll mapping not found")
	case errors.Is(err, mapping.ErrShiftTypeExists):
		Conflict(w, "A mapping for this shift type already exists")

	// Pay period domain errors
	case errors.Is(err, payperiod.ErrPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrPeriodClosed):
		Conflict(w, "Pay period is closed")
	case errors.Is(err, payperiod.ErrPeriodOverlaps):
		Conflict(w, "Pay period overlaps an existing period")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrTimesheetNotLocked):
		Conflict(w, "Timesheet is not locked")

	// Export domain errors
	case errors.Is(err, export.ErrExportNotFound):
		NotFound(w, "Payroll export not found")
	case errors.Is(err, export.ErrAlreadyVoided):
		Conflict(w, "Payroll export already voided")
	case errors.Is(err, export.ErrInvalidProvider):
		BadRequest(w, "Invalid payroll provider", nil)
	case errors.Is(err, export.ErrNoTimesheets):
		BadRequest(w, "No exportable timesheets in pay period", nil)
	case errors.Is(err, export.ErrTimesheetsLocked):
		Conflict(w, "One or more timesheets were locked by a concurrent export")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
