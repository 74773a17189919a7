package award

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
)

type Service struct {
	tx     database.TxRunner
	rates  award.Repository
	audits audit.Repository
}

func NewService(tx database.TxRunner, rates award.Repository, audits audit.Repository) *Service {
	return &Service{tx: tx, rates: rates, audits: audits}
}

// Create inserts a new award rate and supersedes the active one. Rates
// are never deleted, so the full history stays queryable.
func (s *Service) Create(ctx context.Context, req award.CreateRateRequest) (award.RateResponse, error) {
	if err := req.Validate(); err != nil {
		return award.RateResponse{}, err
	}

	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return award.RateResponse{}, err
	}

	rate := award.Rate{
		CompanyID:               companyID,
		BaseRate:                req.BaseRate,
		EveningMultiplier:       req.EveningMultiplier,
		NightMultiplier:         req.NightMultiplier,
		SaturdayMultiplier:      req.SaturdayMultiplier,
		SundayMultiplier:        req.SundayMultiplier,
		PublicHolidayMultiplier: req.PublicHolidayMultiplier,
		OvertimeMultiplier:      req.OvertimeMultiplier,
		IsActive:                true,
		CreatedBy:               userID,
	}

	var created award.Rate
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err = s.rates.Create(txCtx, rate)
		if err != nil {
			return err
		}

		after, _ := json.Marshal(map[string]any{"base_rate": created.BaseRate})
		return s.audits.Record(txCtx, audit.Entry{
			CompanyID:  companyID,
			ActorID:    userID,
			Action:     audit.ActionAwardRateCreated,
			EntityType: audit.EntityAwardRate,
			EntityID:   created.ID,
			After:      after,
		})
	})
	if err != nil {
		return award.RateResponse{}, err
	}

	return newRateResponse(created), nil
}

func (s *Service) GetCurrent(ctx context.Context) (award.RateResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return award.RateResponse{}, err
	}

	rate, err := s.rates.GetActive(ctx, companyID)
	if err != nil {
		return award.RateResponse{}, err
	}

	return newRateResponse(rate), nil
}

func (s *Service) List(ctx context.Context) ([]award.RateResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rates, err := s.rates.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]award.RateResponse, 0, len(rates))
	for _, r := range rates {
		result = append(result, newRateResponse(r))
	}
	return result, nil
}

func newRateResponse(r award.Rate) award.RateResponse {
	return award.RateResponse{
		ID:                      r.ID,
		CompanyID:               r.CompanyID,
		BaseRate:                r.BaseRate,
		EveningMultiplier:       r.EveningMultiplier,
		NightMultiplier:         r.NightMultiplier,
		SaturdayMultiplier:      r.SaturdayMultiplier,
		SundayMultiplier:        r.SundayMultiplier,
		PublicHolidayMultiplier: r.PublicHolidayMultiplier,
		OvertimeMultiplier:      r.OvertimeMultiplier,
		IsActive:                r.IsActive,
		CreatedAt:               r.CreatedAt.Format(time.RFC3339),
	}
}
