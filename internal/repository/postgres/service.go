package postgres

import (
	"context"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *serviceRepository) List(ctx context.Context) ([]*model.ClinicService, error) {
	query := `SELECT id, name, type_id, price, status FROM services ORDER BY name ASC`
	var services []*model.ClinicService
	if err := r.GetDB().SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) ListTypes(ctx context.Context) ([]*model.ServiceType, error) {
	query := `SELECT id, name FROM service_types ORDER BY name ASC`
	var types []*model.ServiceType
	if err := r.GetDB().SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return types, nil
}
