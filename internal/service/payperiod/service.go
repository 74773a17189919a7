package payperiod

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
)

type Service struct {
	tx      database.TxRunner
	periods payperiod.Repository
	audits  audit.Repository
}

func NewService(tx database.TxRunner, periods payperiod.Repository, audits audit.Repository) *Service {
	return &Service{tx: tx, periods: periods, audits: audits}
}

func (s *Service) Create(ctx context.Context, req payperiod.CreatePeriodRequest) (payperiod.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payperiod.PeriodResponse{}, err
	}

	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	start, end := req.Dates()
	overlap, err := s.periods.HasOverlap(ctx, companyID, start, end)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}
	if overlap {
		return payperiod.PeriodResponse{}, payperiod.ErrPeriodOverlaps
	}

	created, err := s.periods.Create(ctx, payperiod.Period{
		CompanyID: companyID,
		StartDate: start,
		EndDate:   end,
		Status:    payperiod.StatusOpen,
		CreatedBy: userID,
	})
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	return payperiod.NewPeriodResponse(created), nil
}

func (s *Service) List(ctx context.Context) ([]payperiod.PeriodResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.periods.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payperiod.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, payperiod.NewPeriodResponse(p))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (payperiod.PeriodResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	period, err := s.periods.GetByID(ctx, id, companyID)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	return payperiod.NewPeriodResponse(period), nil
}

// Close moves a period to its terminal status. Both open and exported
// periods may close; closed periods reject further exports.
func (s *Service) Close(ctx context.Context, id string) (payperiod.PeriodResponse, error) {
	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	period, err := s.periods.GetByID(ctx, id, companyID)
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}
	if period.Status == payperiod.StatusClosed {
		return payperiod.PeriodResponse{}, payperiod.ErrPeriodClosed
	}

	now := time.Now()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.periods.Close(txCtx, id, companyID, userID, now); err != nil {
			return err
		}

		before, _ := json.Marshal(map[string]any{"status": string(period.Status)})
		after, _ := json.Marshal(map[string]any{"status": string(payperiod.StatusClosed)})
		return s.audits.Record(txCtx, audit.Entry{
			CompanyID:  companyID,
			ActorID:    userID,
			Action:     audit.ActionPayPeriodClosed,
			EntityType: audit.EntityPayPeriod,
			EntityID:   id,
			Before:     before,
			After:      after,
		})
	})
	if err != nil {
		return payperiod.PeriodResponse{}, err
	}

	period.Status = payperiod.StatusClosed
	period.ClosedAt = &now
	period.ClosedBy = &userID
	return payperiod.NewPeriodResponse(period), nil
}
