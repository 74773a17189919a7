package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// testInit connects lazily so the package still compiles and skips
// cleanly on machines without a test database.
func testInit(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testDB != nil {
		return
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")

	ctx := context.Background()
	_, err = testDB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	require.NoError(t, err)

	_, err = testDB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS timesheets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL,
			employee_id UUID NOT NULL REFERENCES employees(id),
			work_date DATE NOT NULL,
			clock_in TIME NOT NULL,
			clock_out TIME NOT NULL,
			break_minutes INT NOT NULL DEFAULT 0,
			total_hours NUMERIC(6,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'approved',
			shift_type TEXT NOT NULL DEFAULT 'regular',
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			exported_at TIMESTAMPTZ,
			pay_period_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	require.NoError(t, err)
}

func truncateTimesheetTables(t *testing.T, ctx context.Context) {
	_, err := testDB.Exec(ctx, "TRUNCATE TABLE timesheets CASCADE")
	require.NoError(t, err)
	_, err = testDB.Exec(ctx, "TRUNCATE TABLE employees CASCADE")
	require.NoError(t, err)
}

func createTestEmployee(t *testing.T, ctx context.Context, companyID string) string {
	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (company_id, name, email)
		VALUES ($1, 'Test Employee', 'employee@example.com')
		RETURNING id
	`, companyID).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func createTestTimesheet(t *testing.T, ctx context.Context, companyID, employeeID string, day int) string {
	var id string
	err := testDB.QueryRow(ctx, `
		INSERT INTO timesheets (company_id, employee_id, work_date, clock_in, clock_out, total_hours)
		VALUES ($1, $2, make_date(2025, 6, $3), '09:00', '17:00', 8)
		RETURNING id
	`, companyID, employeeID, day).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestTimesheetRepository_FetchForExport(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTimesheetTables(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	employeeID := createTestEmployee(t, ctx, companyID)
	inside := createTestTimesheet(t, ctx, companyID, employeeID, 2)
	createTestTimesheet(t, ctx, companyID, employeeID, 20)

	repo := postgresql.NewTimesheetRepository(testDB)

	rows, err := repo.FetchForExport(ctx, companyID,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, inside, rows[0].ID)
	assert.Equal(t, "Test Employee", rows[0].EmployeeName)
	assert.Equal(t, "09:00", rows[0].ClockIn)
	assert.Equal(t, "17:00", rows[0].ClockOut)
	assert.False(t, rows[0].IsLocked)
}

func TestTimesheetRepository_LockForExport_SkipsLockedRows(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTimesheetTables(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	employeeID := createTestEmployee(t, ctx, companyID)
	first := createTestTimesheet(t, ctx, companyID, employeeID, 2)
	second := createTestTimesheet(t, ctx, companyID, employeeID, 3)

	repo := postgresql.NewTimesheetRepository(testDB)
	periodID := "22222222-2222-2222-2222-222222222222"
	now := time.Now()

	locked, err := repo.LockForExport(ctx, []string{first, second}, periodID, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, locked)

	// A second attempt over the same rows locks nothing.
	locked, err = repo.LockForExport(ctx, []string{first, second}, periodID, now)
	require.NoError(t, err)
	assert.Empty(t, locked)
}

// Two transactions racing over the same rows must partition them: every
// row is locked by exactly one of the two.
func TestTimesheetRepository_LockForExport_Contention(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTimesheetTables(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	employeeID := createTestEmployee(t, ctx, companyID)
	ids := []string{
		createTestTimesheet(t, ctx, companyID, employeeID, 2),
		createTestTimesheet(t, ctx, companyID, employeeID, 3),
		createTestTimesheet(t, ctx, companyID, employeeID, 4),
	}

	repo := postgresql.NewTimesheetRepository(testDB)
	periodID := "22222222-2222-2222-2222-222222222222"

	var wg sync.WaitGroup
	results := make(chan []string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locked, err := repo.LockForExport(ctx, ids, periodID, time.Now())
			assert.NoError(t, err)
			results <- locked
		}()
	}
	wg.Wait()
	close(results)

	var all []string
	for locked := range results {
		all = append(all, locked...)
	}
	// No row is claimed twice; together the two attempts cover the
	// whole batch exactly once.
	assert.ElementsMatch(t, ids, all)
}

func TestTimesheetRepository_Unlock(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTimesheetTables(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	employeeID := createTestEmployee(t, ctx, companyID)
	id := createTestTimesheet(t, ctx, companyID, employeeID, 2)

	repo := postgresql.NewTimesheetRepository(testDB)
	periodID := "22222222-2222-2222-2222-222222222222"

	locked, err := repo.LockForExport(ctx, []string{id}, periodID, time.Now())
	require.NoError(t, err)
	require.Len(t, locked, 1)

	err = repo.Unlock(ctx, id, companyID)
	require.NoError(t, err)

	ts, err := repo.GetByID(ctx, id, companyID)
	require.NoError(t, err)
	assert.False(t, ts.IsLocked)
}
