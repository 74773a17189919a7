package shift

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
)

type Service struct {
	awards award.Repository
}

func NewService(awards award.Repository) *Service {
	return &Service{awards: awards}
}

// Preview runs the pay calculator against the company's active award
// rate without persisting anything. A company without a configured rate
// gets award.ErrRateNotFound rather than a zero-pay result.
func (s *Service) Preview(ctx context.Context, req shift.PreviewRequest) (shift.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.PreviewResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return shift.PreviewResponse{}, err
	}

	rate, err := s.awards.GetActive(ctx, companyID)
	if err != nil {
		return shift.PreviewResponse{}, err
	}

	calc, err := shift.Calculate(req.Entry(), &rate)
	if err != nil {
		return shift.PreviewResponse{}, err
	}

	return shift.NewPreviewResponse(calc), nil
}
