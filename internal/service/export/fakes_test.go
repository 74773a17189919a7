package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/timesheet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testUserID    = "user-1"
	testPeriodID  = "period-1"
)

// authedContext builds a request context carrying a verified token the
// way the Verifier middleware would.
func authedContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"user_id":    userID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// fakeTxRunner runs the function directly. Fakes cannot roll back, so
// tests assert on the observable outcome instead of store contents
// written before a failure.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePeriodRepo struct {
	mu      sync.Mutex
	periods map[string]payperiod.Period
}

func newFakePeriodRepo(periods ...payperiod.Period) *fakePeriodRepo {
	r := &fakePeriodRepo{periods: make(map[string]payperiod.Period)}
	for _, p := range periods {
		r.periods[p.ID] = p
	}
	return r
}

func (r *fakePeriodRepo) Create(ctx context.Context, p payperiod.Period) (payperiod.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.periods[p.ID] = p
	return p, nil
}

func (r *fakePeriodRepo) GetByID(ctx context.Context, id string, companyID string) (payperiod.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payperiod.Period{}, payperiod.ErrPeriodNotFound
	}
	return p, nil
}

func (r *fakePeriodRepo) ListByCompanyID(ctx context.Context, companyID string) ([]payperiod.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payperiod.Period
	for _, p := range r.periods {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePeriodRepo) HasOverlap(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.periods {
		if p.CompanyID == companyID && !start.After(p.EndDate) && !end.Before(p.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePeriodRepo) UpdateStatus(ctx context.Context, id string, companyID string, status payperiod.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payperiod.ErrPeriodNotFound
	}
	p.Status = status
	r.periods[id] = p
	return nil
}

func (r *fakePeriodRepo) Close(ctx context.Context, id string, companyID string, closedBy string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payperiod.ErrPeriodNotFound
	}
	p.Status = payperiod.StatusClosed
	p.ClosedBy = &closedBy
	p.ClosedAt = &closedAt
	r.periods[id] = p
	return nil
}

type fakeTimesheetRepo struct {
	mu   sync.Mutex
	rows map[string]timesheet.ForExport
}

func newFakeTimesheetRepo(rows ...timesheet.ForExport) *fakeTimesheetRepo {
	r := &fakeTimesheetRepo{rows: make(map[string]timesheet.ForExport)}
	for _, ts := range rows {
		r.rows[ts.ID] = ts
	}
	return r
}

func (r *fakeTimesheetRepo) FetchForExport(ctx context.Context, companyID string, from, to time.Time) ([]timesheet.ForExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesheet.ForExport
	for _, ts := range r.rows {
		if !ts.Date.Before(from) && !ts.Date.After(to) {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (r *fakeTimesheetRepo) LockForExport(ctx context.Context, ids []string, payPeriodID string, exportedAt time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var locked []string
	for _, id := range ids {
		ts, ok := r.rows[id]
		if !ok || ts.IsLocked {
			continue
		}
		ts.IsLocked = true
		at := exportedAt
		ts.ExportedAt = &at
		r.rows[id] = ts
		locked = append(locked, id)
	}
	return locked, nil
}

func (r *fakeTimesheetRepo) Unlock(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.rows[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	ts.IsLocked = false
	ts.ExportedAt = nil
	r.rows[id] = ts
	return nil
}

func (r *fakeTimesheetRepo) GetByID(ctx context.Context, id string, companyID string) (timesheet.ForExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.rows[id]
	if !ok {
		return timesheet.ForExport{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (r *fakeTimesheetRepo) lockedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for id, ts := range r.rows {
		if ts.IsLocked {
			out = append(out, id)
		}
	}
	return out
}

type fakeMappingRepo struct {
	mappings []mapping.Mapping
}

func (r *fakeMappingRepo) Create(ctx context.Context, m mapping.Mapping) (mapping.Mapping, error) {
	r.mappings = append(r.mappings, m)
	return m, nil
}

func (r *fakeMappingRepo) GetByID(ctx context.Context, id string, companyID string) (mapping.Mapping, error) {
	for _, m := range r.mappings {
		if m.ID == id {
			return m, nil
		}
	}
	return mapping.Mapping{}, mapping.ErrMappingNotFound
}

func (r *fakeMappingRepo) ListByCompanyID(ctx context.Context, companyID string) ([]mapping.Mapping, error) {
	return r.mappings, nil
}

func (r *fakeMappingRepo) Update(ctx context.Context, companyID string, req mapping.UpdateMappingRequest) error {
	return nil
}

func (r *fakeMappingRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeAwardRepo struct {
	rate         *award.Rate
	getActiveErr error
}

func (r *fakeAwardRepo) Create(ctx context.Context, rate award.Rate) (award.Rate, error) {
	r.rate = &rate
	return rate, nil
}

func (r *fakeAwardRepo) GetActive(ctx context.Context, companyID string) (award.Rate, error) {
	if r.getActiveErr != nil {
		return award.Rate{}, r.getActiveErr
	}
	if r.rate == nil {
		return award.Rate{}, award.ErrRateNotFound
	}
	return *r.rate, nil
}

func (r *fakeAwardRepo) ListByCompanyID(ctx context.Context, companyID string) ([]award.Rate, error) {
	if r.rate == nil {
		return nil, nil
	}
	return []award.Rate{*r.rate}, nil
}

type fakeExportRepo struct {
	mu      sync.Mutex
	records map[string]export.Export
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{records: make(map[string]export.Export)}
}

func (r *fakeExportRepo) Create(ctx context.Context, e export.Export) (export.Export, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.CreatedAt = time.Now()
	r.records[e.ID] = e
	return e, nil
}

func (r *fakeExportRepo) GetByID(ctx context.Context, id string, companyID string) (export.Export, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return export.Export{}, export.ErrExportNotFound
	}
	return e, nil
}

func (r *fakeExportRepo) ListByPayPeriodID(ctx context.Context, payPeriodID string, companyID string) ([]export.Export, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []export.Export
	for _, e := range r.records {
		if e.PayPeriodID == payPeriodID && e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExportRepo) Void(ctx context.Context, id string, companyID string, reason string, voidedBy string, voidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return export.ErrExportNotFound
	}
	if e.Status != export.StatusGenerated {
		return export.ErrAlreadyVoided
	}
	e.Status = export.StatusVoided
	e.VoidReason = &reason
	e.VoidedBy = &voidedBy
	e.VoidedAt = &voidedAt
	r.records[id] = e
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *fakeAuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return path, nil
}

func (s *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.test/" + path, nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// barrierStorage holds every Upload until the expected number of callers
// have arrived, so concurrent generations derive their artifact paths
// before either of them finishes.
type barrierStorage struct {
	*fakeStorage
	barrier *sync.WaitGroup

	pathsMu sync.Mutex
	paths   []string
}

func newBarrierStorage(callers int) *barrierStorage {
	var wg sync.WaitGroup
	wg.Add(callers)
	return &barrierStorage{fakeStorage: newFakeStorage(), barrier: &wg}
}

func (s *barrierStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	s.pathsMu.Lock()
	s.paths = append(s.paths, path)
	s.pathsMu.Unlock()
	s.barrier.Done()
	s.barrier.Wait()
	return s.fakeStorage.Upload(ctx, file, path, contentType)
}

func (s *barrierStorage) uploadedPaths() []string {
	s.pathsMu.Lock()
	defer s.pathsMu.Unlock()
	return append([]string(nil), s.paths...)
}
