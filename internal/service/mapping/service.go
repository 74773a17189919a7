package mapping

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type Service struct {
	mappings mapping.Repository
}

func NewService(mappings mapping.Repository) *Service {
	return &Service{mappings: mappings}
}

func (s *Service) Create(ctx context.Context, req mapping.CreateMappingRequest) (mapping.MappingResponse, error) {
	if err := req.Validate(); err != nil {
		return mapping.MappingResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return mapping.MappingResponse{}, err
	}

	multiplier := decimal.NewFromInt(1)
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}

	created, err := s.mappings.Create(ctx, mapping.Mapping{
		CompanyID:   companyID,
		ShiftType:   req.ShiftType,
		EarningCode: req.EarningCode,
		Description: req.Description,
		Multiplier:  multiplier,
		Condition:   req.Condition,
	})
	if err != nil {
		return mapping.MappingResponse{}, err
	}

	return newMappingResponse(created), nil
}

func (s *Service) List(ctx context.Context) ([]mapping.MappingResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	mappings, err := s.mappings.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]mapping.MappingResponse, 0, len(mappings))
	for _, m := range mappings {
		result = append(result, newMappingResponse(m))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, req mapping.UpdateMappingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.mappings.Update(ctx, companyID, req)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.mappings.Delete(ctx, id, companyID)
}

func newMappingResponse(m mapping.Mapping) mapping.MappingResponse {
	return mapping.MappingResponse{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		ShiftType:   m.ShiftType,
		EarningCode: m.EarningCode,
		Description: m.Description,
		Multiplier:  m.Multiplier,
		Condition:   m.Condition,
	}
}
