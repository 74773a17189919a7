package audit

import (
	"encoding/json"
	"time"
)

// Entry is one audit record. Before/After carry entity snapshots as raw
// JSON; either may be nil.
type Entry struct {
	ID         string
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}

// Actions emitted by the export lifecycle.
const (
	ActionExportGenerated  = "payroll_export.generated"
	ActionExportVoided     = "payroll_export.voided"
	ActionTimesheetUnlock  = "timesheet.unlocked"
	ActionPayPeriodClosed  = "pay_period.closed"
	ActionAwardRateCreated = "award_rate.created"
)

const (
	EntityPayrollExport = "payroll_export"
	EntityTimesheet     = "timesheet"
	EntityPayPeriod     = "pay_period"
	EntityAwardRate     = "award_rate"
)
