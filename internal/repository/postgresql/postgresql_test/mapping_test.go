package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mappingTestInit(t *testing.T, ctx context.Context) {
	t.Helper()
	testInit(t)

	_, err := testDB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS payroll_mappings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL,
			shift_type TEXT NOT NULL,
			earning_code TEXT NOT NULL,
			description TEXT,
			multiplier NUMERIC(6,3) NOT NULL DEFAULT 1,
			condition TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uk_payroll_mapping_shift_type UNIQUE (company_id, shift_type)
		)
	`)
	require.NoError(t, err)

	_, err = testDB.Exec(ctx, "TRUNCATE TABLE payroll_mappings")
	require.NoError(t, err)
}

func createTestMapping(t *testing.T, ctx context.Context, repo mapping.Repository, companyID string) mapping.Mapping {
	t.Helper()
	description := "Evening loading"
	condition := "clock_out >= 18:00"
	created, err := repo.Create(ctx, mapping.Mapping{
		CompanyID:   companyID,
		ShiftType:   "evening",
		EarningCode: "EVE",
		Description: &description,
		Multiplier:  decimal.NewFromFloat(1.25),
		Condition:   &condition,
	})
	require.NoError(t, err)
	return created
}

func TestMappingRepository_Update_EmptyStringClearsNullableFields(t *testing.T) {
	ctx := context.Background()
	mappingTestInit(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	repo := postgresql.NewMappingRepository(testDB)
	created := createTestMapping(t, ctx, repo, companyID)

	// Act
	empty := ""
	err := repo.Update(ctx, companyID, mapping.UpdateMappingRequest{
		ID:        created.ID,
		Condition: &empty,
	})

	// Assert
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Nil(t, got.Condition, "empty string must clear the condition")
	require.NotNil(t, got.Description, "untouched fields keep their values")
	assert.Equal(t, "Evening loading", *got.Description)
	assert.Equal(t, "EVE", got.EarningCode)
}

func TestMappingRepository_Update_NilKeepsNullableFields(t *testing.T) {
	ctx := context.Background()
	mappingTestInit(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	repo := postgresql.NewMappingRepository(testDB)
	created := createTestMapping(t, ctx, repo, companyID)

	// Act
	code := "EVE2"
	err := repo.Update(ctx, companyID, mapping.UpdateMappingRequest{
		ID:          created.ID,
		EarningCode: &code,
	})

	// Assert
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "EVE2", got.EarningCode)
	require.NotNil(t, got.Condition, "omitted fields must survive the patch")
	assert.Equal(t, "clock_out >= 18:00", *got.Condition)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Evening loading", *got.Description)
}

func TestMappingRepository_Create_DuplicateShiftType(t *testing.T) {
	ctx := context.Background()
	mappingTestInit(t, ctx)

	companyID := "11111111-1111-1111-1111-111111111111"
	repo := postgresql.NewMappingRepository(testDB)
	createTestMapping(t, ctx, repo, companyID)

	_, err := repo.Create(ctx, mapping.Mapping{
		CompanyID:   companyID,
		ShiftType:   "evening",
		EarningCode: "EVE_ALT",
		Multiplier:  decimal.NewFromInt(1),
	})

	assert.ErrorIs(t, err, mapping.ErrShiftTypeExists)
}
