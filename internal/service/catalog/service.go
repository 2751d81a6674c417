package catalog

import (
	"context"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
)

// Service serves the read-only billing and pharmacy catalogs.
type Service struct {
	services repository.ServiceRepository
}

func NewService(services repository.ServiceRepository) *Service {
	return &Service{services: services}
}

// ListServices joins clinic services with their type names. A dangling
// type id renders as "Unknown" rather than dropping the row from a price
// list.
func (s *Service) ListServices(ctx context.Context) ([]*model.ClinicServiceView, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	types, err := s.services.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	typeNames := make(map[int64]string, len(types))
	for _, serviceType := range types {
		typeNames[serviceType.ID] = serviceType.Name
	}

	views := make([]*model.ClinicServiceView, 0, len(services))
	for _, service := range services {
		typeName, ok := typeNames[service.TypeID]
		if !ok {
			typeName = "Unknown"
		}
		views = append(views, &model.ClinicServiceView{
			ID:       service.ID,
			Name:     service.Name,
			TypeName: typeName,
			Price:    service.Price,
			Status:   service.Status,
		})
	}
	return views, nil
}

func (s *Service) ListServiceTypes(ctx context.Context) ([]*model.ServiceType, error) {
	types, err := s.services.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return types, nil
}
