package export

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
)

// IssueCode enum - validation error/warning classifiers.
type IssueCode string

const (
	IssueInvalidDates      IssueCode = "invalid_dates"
	IssueUnapproved        IssueCode = "unapproved"
	IssueDuplicate         IssueCode = "duplicate"
	IssueMissingIdentifier IssueCode = "missing_identifier"
	IssueMissingMapping    IssueCode = "missing_mapping"
	IssueOverlap           IssueCode = "overlap"
	IssueLongShift         IssueCode = "long_shift"
)

// Issue is one validation finding with optional employee/date context.
type Issue struct {
	Code         IssueCode  `json:"code"`
	Message      string     `json:"message"`
	EmployeeName string     `json:"employee_name,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}

// ValidationResult is returned as data, not as an error: errors block
// export, warnings do not, and callers render both.
type ValidationResult struct {
	IsValid    bool
	Errors     []Issue
	Warnings   []Issue
	Timesheets []timesheet.ForExport
}
