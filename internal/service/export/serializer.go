package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
)

// Fallback earning labels when a shift type has no mapping. Missing
// mappings are a blocking validation error upstream, so these only
// matter if a caller serializes an unvalidated batch; serialization
// itself never fails on them.
var defaultEarningCodes = map[export.Provider]string{
	export.ProviderGeneric: "ORD",
	export.ProviderXero:    "Ordinary Hours",
	export.ProviderKeyPay:  "ORD",
	export.ProviderMYOB:    "Base Hourly",
}

var headers = map[export.Provider][]string{
	export.ProviderGeneric: {"employee_email", "employee_name", "date", "start_time", "end_time", "break_minutes", "hours", "earning_code", "cost_center", "notes"},
	export.ProviderXero:    {"Employee Email", "Location", "Date", "Earnings Category", "Units", "Notes"},
	export.ProviderKeyPay:  {"Employee Email", "Earnings Rate Code", "Units", "Date"},
	export.ProviderMYOB:    {"Employee Email", "Payroll Category", "Units", "Date"},
}

// Serialize renders the validated timesheet batch as a UTF-8 CSV
// document in the requested provider dialect: one header row followed
// by one data row per timesheet.
func Serialize(provider export.Provider, rows []timesheet.ForExport, mappings map[string]mapping.Mapping) ([]byte, error) {
	header, ok := headers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", export.ErrInvalidProvider, provider)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, ts := range rows {
		code := earningCode(provider, ts.ShiftType, mappings)
		date := ts.Date.Format("2006-01-02")
		units := formatHours(ts.TotalHours)

		var record []string
		switch provider {
		case export.ProviderGeneric:
			record = []string{
				ts.EmployeeEmail,
				ts.EmployeeName,
				date,
				ts.ClockIn,
				ts.ClockOut,
				strconv.Itoa(ts.BreakMinutes),
				units,
				code,
				"", // cost_center
				"", // notes
			}
		case export.ProviderXero:
			record = []string{ts.EmployeeEmail, "", date, code, units, ""}
		case export.ProviderKeyPay:
			record = []string{ts.EmployeeEmail, code, units, date}
		case export.ProviderMYOB:
			record = []string{ts.EmployeeEmail, code, units, date}
		}

		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func earningCode(provider export.Provider, shiftType string, mappings map[string]mapping.Mapping) string {
	if m, ok := mappings[shiftType]; ok {
		return m.EarningCode
	}
	return defaultEarningCodes[provider]
}

// Hour fields always carry exactly two decimal places.
func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
