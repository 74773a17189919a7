package payperiod

import "time"

// Status enum
type Status string

const (
	StatusOpen     Status = "open"
	StatusExported Status = "exported"
	StatusClosed   Status = "closed"
)

// Period - A company pay period window.
// Transitions are one-directional: open -> exported (via export
// generation) and open/exported -> closed (terminal). Voiding an export
// does not move the period back to open.
type Period struct {
	ID        string
	CompanyID string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	CreatedBy string
	ClosedAt  *time.Time
	ClosedBy  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
