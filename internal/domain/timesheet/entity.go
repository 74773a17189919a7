package timesheet

import "time"

// ApprovalStatus enum
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// ForExport is the read-only projection of a timesheet row consumed by
// export validation and serialization. Employee name and email come
// from a join; the engine never writes timesheet content, only the lock
// columns.
type ForExport struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	EmployeeEmail string
	Date          time.Time
	ClockIn       string
	ClockOut      string
	BreakMinutes  int
	TotalHours    float64
	Status        ApprovalStatus
	IsLocked      bool
	ExportedAt    *time.Time
	ShiftType     string
}
