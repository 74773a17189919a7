package mapping

import "errors"

var (
	ErrMappingNotFound  = errors.New("payroll mapping not found")
	ErrShiftTypeExists  = errors.New("a mapping for this shift type already exists")
	ErrInvalidShiftType = errors.New("invalid shift type")
)
