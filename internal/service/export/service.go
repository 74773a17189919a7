package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const downloadURLTTL = 15 * time.Minute

// Service drives the export lifecycle: validation, serialization,
// artifact persistence, timesheet locking, pay period transition, and
// audit emission.
type Service struct {
	tx         database.TxRunner
	validator  *Validator
	periods    payperiod.Repository
	timesheets timesheet.Repository
	mappings   mapping.Repository
	awards     award.Repository
	exports    export.Repository
	audits     audit.Repository
	files      storage.FileStorage
}

func NewService(
	tx database.TxRunner,
	validator *Validator,
	periods payperiod.Repository,
	timesheets timesheet.Repository,
	mappings mapping.Repository,
	awards award.Repository,
	exports export.Repository,
	audits audit.Repository,
	files storage.FileStorage,
) *Service {
	return &Service{
		tx:         tx,
		validator:  validator,
		periods:    periods,
		timesheets: timesheets,
		mappings:   mappings,
		awards:     awards,
		exports:    exports,
		audits:     audits,
		files:      files,
	}
}

// ValidateExport runs a dry-run validation of the pay period without
// touching any state.
func (s *Service) ValidateExport(ctx context.Context, payPeriodID string) (export.ValidationResultResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return export.ValidationResultResponse{}, err
	}

	mappingIdx, err := s.mappingIndex(ctx, companyID)
	if err != nil {
		return export.ValidationResultResponse{}, err
	}

	result, err := s.validator.Validate(ctx, companyID, payPeriodID, mappingIdx)
	if err != nil {
		return export.ValidationResultResponse{}, err
	}

	return export.NewValidationResultResponse(result), nil
}

// Generate runs the full export lifecycle for a pay period. Blocking
// validation errors abort before any artifact, record, or lock exists.
// The export record, row locks, period transition, and audit entry
// share one transaction, so a lock shortfall caused by a concurrent
// export rolls everything back.
func (s *Service) Generate(ctx context.Context, req export.GenerateRequest) (export.ExportResponse, error) {
	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return export.ExportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return export.ExportResponse{}, err
	}

	period, err := s.periods.GetByID(ctx, req.PayPeriodID, companyID)
	if err != nil {
		return export.ExportResponse{}, err
	}
	if period.Status == payperiod.StatusClosed {
		return export.ExportResponse{}, payperiod.ErrPeriodClosed
	}

	mappingIdx, err := s.mappingIndex(ctx, companyID)
	if err != nil {
		return export.ExportResponse{}, err
	}

	result, err := s.validator.Validate(ctx, companyID, req.PayPeriodID, mappingIdx)
	if err != nil {
		return export.ExportResponse{}, err
	}
	if !result.IsValid {
		return export.ExportResponse{}, &export.ValidationFailedError{Result: result}
	}
	if len(result.Timesheets) == 0 {
		return export.ExportResponse{}, export.ErrNoTimesheets
	}

	data, err := Serialize(req.Provider, result.Timesheets, mappingIdx)
	if err != nil {
		return export.ExportResponse{}, err
	}

	summary, err := s.buildSummary(ctx, companyID, result.Timesheets, mappingIdx)
	if err != nil {
		return export.ExportResponse{}, err
	}

	now := time.Now()
	// The uuid salt keeps the path unique per attempt: two generations
	// racing within the same millisecond must not share a path, or the
	// loser's rollback cleanup would delete the winner's artifact.
	path := fmt.Sprintf("exports/%s/export_%s_%s_%d_%s.csv", companyID, req.PayPeriodID, req.Provider, now.UnixMilli(), uuid.NewString())
	storedPath, err := s.files.Upload(ctx, bytes.NewReader(data), path, "text/csv")
	if err != nil {
		// Nothing has been persisted yet: no record, no locks.
		return export.ExportResponse{}, fmt.Errorf("failed to persist export artifact: %w", err)
	}

	record := export.Export{
		ID:          uuid.NewString(),
		PayPeriodID: req.PayPeriodID,
		CompanyID:   companyID,
		Provider:    req.Provider,
		FilePath:    storedPath,
		Summary:     summary,
		Status:      export.StatusGenerated,
		CreatedBy:   userID,
	}

	ids := make([]string, 0, len(result.Timesheets))
	for _, ts := range result.Timesheets {
		ids = append(ids, ts.ID)
	}

	var created export.Export
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err = s.exports.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create export record: %w", err)
		}

		locked, err := s.timesheets.LockForExport(txCtx, ids, req.PayPeriodID, now)
		if err != nil {
			return fmt.Errorf("failed to lock timesheets: %w", err)
		}
		if len(locked) != len(ids) {
			// A concurrent export claimed some of the rows first.
			return export.ErrTimesheetsLocked
		}

		if err := s.periods.UpdateStatus(txCtx, req.PayPeriodID, companyID, payperiod.StatusExported); err != nil {
			return fmt.Errorf("failed to transition pay period: %w", err)
		}

		after, _ := json.Marshal(map[string]any{
			"provider":       string(req.Provider),
			"file_path":      created.FilePath,
			"line_count":     created.Summary.LineCount,
			"employee_count": created.Summary.EmployeeCount,
			"total_hours":    created.Summary.TotalHours,
		})
		return s.audits.Record(txCtx, audit.Entry{
			CompanyID:  companyID,
			ActorID:    userID,
			Action:     audit.ActionExportGenerated,
			EntityType: audit.EntityPayrollExport,
			EntityID:   created.ID,
			After:      after,
		})
	})
	if err != nil {
		// The artifact is orphaned once the transaction rolls back;
		// remove it best-effort.
		_ = s.files.Delete(ctx, storedPath)
		return export.ExportResponse{}, err
	}

	return export.NewExportResponse(created), nil
}

// Void marks an export voided. It records a permanent historical
// marker: the timesheets stay locked and the pay period keeps its
// exported status, so the period may be re-attempted.
func (s *Service) Void(ctx context.Context, req export.VoidRequest) (export.ExportResponse, error) {
	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return export.ExportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return export.ExportResponse{}, err
	}

	record, err := s.exports.GetByID(ctx, req.ExportID, companyID)
	if err != nil {
		return export.ExportResponse{}, err
	}
	if record.Status == export.StatusVoided {
		return export.ExportResponse{}, export.ErrAlreadyVoided
	}

	now := time.Now()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.exports.Void(txCtx, req.ExportID, companyID, req.Reason, userID, now); err != nil {
			return err
		}

		before, _ := json.Marshal(map[string]any{"status": string(record.Status)})
		after, _ := json.Marshal(map[string]any{"status": string(export.StatusVoided), "reason": req.Reason})
		return s.audits.Record(txCtx, audit.Entry{
			CompanyID:  companyID,
			ActorID:    userID,
			Action:     audit.ActionExportVoided,
			EntityType: audit.EntityPayrollExport,
			EntityID:   record.ID,
			Before:     before,
			After:      after,
		})
	})
	if err != nil {
		return export.ExportResponse{}, err
	}

	record.Status = export.StatusVoided
	record.VoidReason = &req.Reason
	record.VoidedBy = &userID
	record.VoidedAt = &now
	return export.NewExportResponse(record), nil
}

// UnlockTimesheet clears the lock on one timesheet outside the normal
// lifecycle. It never touches the export record or the pay period.
func (s *Service) UnlockTimesheet(ctx context.Context, req export.UnlockRequest) error {
	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	ts, err := s.timesheets.GetByID(ctx, req.TimesheetID, companyID)
	if err != nil {
		return err
	}
	if !ts.IsLocked {
		return timesheet.ErrTimesheetNotLocked
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.timesheets.Unlock(txCtx, req.TimesheetID, companyID); err != nil {
			return err
		}

		after, _ := json.Marshal(map[string]any{"reason": req.Reason})
		return s.audits.Record(txCtx, audit.Entry{
			CompanyID:  companyID,
			ActorID:    userID,
			Action:     audit.ActionTimesheetUnlock,
			EntityType: audit.EntityTimesheet,
			EntityID:   req.TimesheetID,
			After:      after,
		})
	})
}

func (s *Service) ListByPeriod(ctx context.Context, payPeriodID string) ([]export.ExportResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.exports.ListByPayPeriodID(ctx, payPeriodID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]export.ExportResponse, 0, len(records))
	for _, e := range records {
		result = append(result, export.NewExportResponse(e))
	}
	return result, nil
}

// DownloadURL returns a short-lived URL for the export artifact.
func (s *Service) DownloadURL(ctx context.Context, exportID string) (export.DownloadResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return export.DownloadResponse{}, err
	}

	record, err := s.exports.GetByID(ctx, exportID, companyID)
	if err != nil {
		return export.DownloadResponse{}, err
	}

	url, err := s.files.GetURL(ctx, record.FilePath, downloadURLTTL)
	if err != nil {
		return export.DownloadResponse{}, fmt.Errorf("failed to generate download url: %w", err)
	}

	return export.DownloadResponse{
		URL:       url,
		ExpiresIn: int(downloadURLTTL.Seconds()),
	}, nil
}

func (s *Service) mappingIndex(ctx context.Context, companyID string) (map[string]mapping.Mapping, error) {
	mappings, err := s.mappings.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payroll mappings: %w", err)
	}
	return mapping.ByShiftType(mappings), nil
}

// buildSummary computes export totals. Earnings are optional: they are
// only filled in when the company has an award rate configured, using
// the mapping multiplier (1 when a row has no mapping). A missing rate
// is not an error; a failed lookup is, so an outage never masquerades
// as a missing configuration.
func (s *Service) buildSummary(ctx context.Context, companyID string, rows []timesheet.ForExport, mappings map[string]mapping.Mapping) (export.Summary, error) {
	summary := export.Summary{LineCount: len(rows)}

	employees := make(map[string]bool)
	for _, ts := range rows {
		summary.TotalHours += ts.TotalHours
		employees[ts.EmployeeID] = true
	}
	summary.EmployeeCount = len(employees)

	rate, err := s.awards.GetActive(ctx, companyID)
	if err != nil {
		if errors.Is(err, award.ErrRateNotFound) {
			return summary, nil
		}
		return export.Summary{}, fmt.Errorf("failed to fetch active award rate: %w", err)
	}

	total := decimal.Zero
	for _, ts := range rows {
		multiplier := decimal.NewFromInt(1)
		if m, ok := mappings[ts.ShiftType]; ok {
			multiplier = m.Multiplier
		}
		total = total.Add(decimal.NewFromFloat(ts.TotalHours).Mul(rate.BaseRate).Mul(multiplier))
	}
	summary.TotalEarnings = &total

	return summary, nil
}
