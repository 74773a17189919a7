package award

import "errors"

var (
	ErrRateNotFound = errors.New("award rate not found")
	ErrRateInUse    = errors.New("award rate is referenced by a finalized export and cannot be modified")
)
