package payperiod

import "errors"

var (
	ErrPeriodNotFound = errors.New("pay period not found")
	ErrPeriodClosed   = errors.New("pay period is closed")
	ErrPeriodOverlaps = errors.New("pay period overlaps an existing period")
	ErrInvalidDates   = errors.New("invalid pay period dates")
)
