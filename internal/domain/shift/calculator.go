package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/shopspring/decimal"
)

// Penalty windows on the ordinary-weekday clock. The night window wraps
// past midnight.
const (
	eveningStart = 18.0
	eveningEnd   = 23.0
	nightStart   = 23.0
	nightEnd     = 6.0
)

// Calculate produces the hour-bucketed pay breakdown for a single shift.
// It is pure: no I/O and no shared state, safe for concurrent use.
// A nil rate means the company has no award rate configured and the
// calculation is skipped; the caller surfaces that as a configuration gap.
func Calculate(entry Entry, rate *award.Rate) (*Calculation, error) {
	if rate == nil {
		return nil, nil
	}

	startMin, err := parseClock(entry.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", entry.Start, err)
	}
	endMin, err := parseClock(entry.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", entry.End, err)
	}

	// End before start means the shift crosses midnight.
	if endMin < startMin {
		endMin += 24 * 60
	}

	calc := &Calculation{
		TotalHours: float64(endMin-startMin) / 60,
		BreakHours: float64(entry.BreakMinutes) / 60,
	}
	calc.WorkedHours = max(0, calc.TotalHours-calc.BreakHours)

	switch {
	case entry.IsOvertime:
		// Overtime is exclusive of time-of-day penalties.
		calc.OvertimeHours = calc.WorkedHours
	case entry.IsPublicHoliday:
		calc.PublicHolidayHours = calc.WorkedHours
	case entry.Date.Weekday() == time.Saturday:
		calc.SaturdayHours = calc.WorkedHours
	case entry.Date.Weekday() == time.Sunday:
		calc.SundayHours = calc.WorkedHours
	default:
		startH := float64(startMin) / 60
		endH := float64(endMin) / 60
		calc.EveningHours = OverlapHours(startH, endH, eveningStart, eveningEnd)
		calc.NightHours = OverlapHours(startH, endH, nightStart, nightEnd)
		calc.BaseHours = max(0, calc.WorkedHours-calc.EveningHours-calc.NightHours)
	}

	calc.BasePay = categoryPay(calc.BaseHours, rate.BaseRate, decimal.NewFromInt(1))
	calc.EveningPay = categoryPay(calc.EveningHours, rate.BaseRate, rate.EveningMultiplier)
	calc.NightPay = categoryPay(calc.NightHours, rate.BaseRate, rate.NightMultiplier)
	calc.SaturdayPay = categoryPay(calc.SaturdayHours, rate.BaseRate, rate.SaturdayMultiplier)
	calc.SundayPay = categoryPay(calc.SundayHours, rate.BaseRate, rate.SundayMultiplier)
	calc.PublicHolidayPay = categoryPay(calc.PublicHolidayHours, rate.BaseRate, rate.PublicHolidayMultiplier)
	calc.OvertimePay = categoryPay(calc.OvertimeHours, rate.BaseRate, rate.OvertimeMultiplier)
	calc.TotalPay = calc.BasePay.
		Add(calc.EveningPay).
		Add(calc.NightPay).
		Add(calc.SaturdayPay).
		Add(calc.SundayPay).
		Add(calc.PublicHolidayPay).
		Add(calc.OvertimePay)

	return calc, nil
}

func categoryPay(hours float64, baseRate, multiplier decimal.Decimal) decimal.Decimal {
	if hours == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(hours).Mul(baseRate).Mul(multiplier)
}

// parseClock converts "HH:MM" wall-clock time to minutes of day.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute")
	}
	return h*60 + m, nil
}
