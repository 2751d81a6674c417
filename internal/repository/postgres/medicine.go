package postgres

import (
	"context"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *medicineRepository) Get(ctx context.Context, id int64) (*model.Medicine, error) {
	query := `SELECT * FROM medicines WHERE id = $1`
	var medicine model.Medicine
	if err := r.GetDB().GetContext(ctx, &medicine, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return &medicine, nil
}

func (r *medicineRepository) List(ctx context.Context) ([]*model.Medicine, error) {
	query := `SELECT * FROM medicines ORDER BY name ASC`
	var medicines []*model.Medicine
	if err := r.GetDB().SelectContext(ctx, &medicines, query); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) Search(ctx context.Context, term string) ([]*model.Medicine, error) {
	query := `
		SELECT * FROM medicines
		WHERE LOWER(name) LIKE $1 OR LOWER(code) LIKE $1
		ORDER BY name ASC
		LIMIT 50
	`
	pattern := "%" + toLowerPattern(term) + "%"
	var medicines []*model.Medicine
	if err := r.GetDB().SelectContext(ctx, &medicines, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) GetGroup(ctx context.Context, id int64) (*model.MedicineGroup, error) {
	query := `SELECT id, name FROM medicine_groups WHERE id = $1`
	var group model.MedicineGroup
	if err := r.GetDB().GetContext(ctx, &group, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medicine group: %w", err)
	}
	return &group, nil
}
