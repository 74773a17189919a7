package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializerRows() []timesheet.ForExport {
	return []timesheet.ForExport{
		{
			ID:            "ts-1",
			EmployeeID:    "emp-1",
			EmployeeName:  "Alice Nguyen",
			EmployeeEmail: "alice@example.com",
			Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			ClockIn:       "09:00",
			ClockOut:      "17:00",
			BreakMinutes:  30,
			TotalHours:    7.5,
			Status:        timesheet.StatusApproved,
			ShiftType:     "regular",
		},
		{
			ID:            "ts-2",
			EmployeeID:    "emp-2",
			EmployeeName:  "Smith, Bob",
			EmployeeEmail: "bob@example.com",
			Date:          time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			ClockIn:       "22:00",
			ClockOut:      "06:00",
			BreakMinutes:  0,
			TotalHours:    8,
			Status:        timesheet.StatusApproved,
			ShiftType:     "night",
		},
	}
}

func serializerMappings() map[string]mapping.Mapping {
	return mapping.ByShiftType([]mapping.Mapping{
		{ID: "m-1", ShiftType: "regular", EarningCode: "ORD", Multiplier: decimal.NewFromInt(1)},
		{ID: "m-2", ShiftType: "night", EarningCode: "NIGHT", Multiplier: decimal.NewFromFloat(1.5)},
	})
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestSerialize_Generic(t *testing.T) {
	data, err := Serialize(export.ProviderGeneric, serializerRows(), serializerMappings())
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"employee_email", "employee_name", "date", "start_time", "end_time",
		"break_minutes", "hours", "earning_code", "cost_center", "notes",
	}, records[0])
	assert.Equal(t, []string{
		"alice@example.com", "Alice Nguyen", "2025-06-02", "09:00", "17:00",
		"30", "7.50", "ORD", "", "",
	}, records[1])
	assert.Equal(t, []string{
		"bob@example.com", "Smith, Bob", "2025-06-03", "22:00", "06:00",
		"0", "8.00", "NIGHT", "", "",
	}, records[2])
}

func TestSerialize_Xero(t *testing.T) {
	data, err := Serialize(export.ProviderXero, serializerRows(), serializerMappings())
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Employee Email", "Location", "Date", "Earnings Category", "Units", "Notes"}, records[0])
	assert.Equal(t, []string{"alice@example.com", "", "2025-06-02", "ORD", "7.50", ""}, records[1])
	assert.Equal(t, []string{"bob@example.com", "", "2025-06-03", "NIGHT", "8.00", ""}, records[2])
}

func TestSerialize_KeyPayAndMYOB(t *testing.T) {
	for provider, header := range map[export.Provider][]string{
		export.ProviderKeyPay: {"Employee Email", "Earnings Rate Code", "Units", "Date"},
		export.ProviderMYOB:   {"Employee Email", "Payroll Category", "Units", "Date"},
	} {
		data, err := Serialize(provider, serializerRows(), serializerMappings())
		require.NoError(t, err, "provider %s", provider)

		records := parseCSV(t, data)
		require.Len(t, records, 3, "provider %s", provider)
		assert.Equal(t, header, records[0], "provider %s", provider)
		assert.Equal(t, []string{"alice@example.com", "ORD", "7.50", "2025-06-02"}, records[1], "provider %s", provider)
	}
}

func TestSerialize_QuotesFieldsWithCommas(t *testing.T) {
	data, err := Serialize(export.ProviderGeneric, serializerRows(), serializerMappings())
	require.NoError(t, err)

	// The name containing a comma must be quoted on the wire, and must
	// survive a round trip intact.
	assert.Contains(t, string(data), `"Smith, Bob"`)
	records := parseCSV(t, data)
	assert.Equal(t, "Smith, Bob", records[2][1])
}

func TestSerialize_FallbackEarningCodes(t *testing.T) {
	rows := serializerRows()[:1]
	rows[0].ShiftType = "unmapped"

	for provider, want := range map[export.Provider]string{
		export.ProviderGeneric: "ORD",
		export.ProviderXero:    "Ordinary Hours",
		export.ProviderKeyPay:  "ORD",
		export.ProviderMYOB:    "Base Hourly",
	} {
		data, err := Serialize(provider, rows, serializerMappings())
		require.NoError(t, err, "provider %s", provider)
		assert.Contains(t, string(data), want, "provider %s", provider)
	}
}

func TestSerialize_EmptyBatchStillHasHeader(t *testing.T) {
	data, err := Serialize(export.ProviderKeyPay, nil, serializerMappings())
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 1)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestSerialize_UnknownProvider(t *testing.T) {
	_, err := Serialize(export.Provider("sage"), serializerRows(), serializerMappings())
	assert.ErrorIs(t, err, export.ErrInvalidProvider)
}
