package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single worked shift as captured on a timesheet.
// Start and End are local wall-clock times in "HH:MM" form. End may be
// numerically earlier than Start, meaning the shift crosses midnight.
type Entry struct {
	Date            time.Time
	Start           string
	End             string
	BreakMinutes    int
	IsPublicHoliday bool
	IsOvertime      bool
}

// Calculation is the hour-bucketed pay breakdown for one shift.
// Worked hours are partitioned across exactly one of the categories;
// the category hours always sum back to WorkedHours.
type Calculation struct {
	TotalHours  float64
	BreakHours  float64
	WorkedHours float64

	BaseHours          float64
	EveningHours       float64
	NightHours         float64
	SaturdayHours      float64
	SundayHours        float64
	PublicHolidayHours float64
	OvertimeHours      float64

	BasePay          decimal.Decimal
	EveningPay       decimal.Decimal
	NightPay         decimal.Decimal
	SaturdayPay      decimal.Decimal
	SundayPay        decimal.Decimal
	PublicHolidayPay decimal.Decimal
	OvertimePay      decimal.Decimal
	TotalPay         decimal.Decimal
}
