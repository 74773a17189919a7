package export

import "errors"

var (
	ErrExportNotFound    = errors.New("payroll export not found")
	ErrAlreadyVoided     = errors.New("payroll export already voided")
	ErrInvalidProvider   = errors.New("invalid payroll provider")
	ErrNoTimesheets      = errors.New("no exportable timesheets in pay period")
	ErrTimesheetsLocked  = errors.New("one or more timesheets were locked by a concurrent export")
	ErrValidationBlocked = errors.New("export blocked by validation errors")
)

// ValidationFailedError carries the full validation result so handlers
// can render the individual findings alongside the refusal.
type ValidationFailedError struct {
	Result ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return ErrValidationBlocked.Error()
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationBlocked
}
