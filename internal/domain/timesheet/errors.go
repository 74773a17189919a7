package timesheet

import "errors"

var (
	ErrTimesheetNotFound  = errors.New("timesheet not found")
	ErrTimesheetNotLocked = errors.New("timesheet is not locked")
)
