package mapping

import "context"

// Repository defines data access for payroll mappings.
type Repository interface {
	Create(ctx context.Context, m Mapping) (Mapping, error)
	GetByID(ctx context.Context, id string, companyID string) (Mapping, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Mapping, error)
	Update(ctx context.Context, companyID string, req UpdateMappingRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}

// ByShiftType indexes mappings by their shift type classifier for the
// validator and serializer lookups.
func ByShiftType(mappings []Mapping) map[string]Mapping {
	index := make(map[string]Mapping, len(mappings))
	for _, m := range mappings {
		index[m.ShiftType] = m
	}
	return index
}
