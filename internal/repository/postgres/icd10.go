package postgres

import (
	"context"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *icd10Repository) Get(ctx context.Context, id int64) (*model.ICD10Code, error) {
	query := `SELECT id, code, description FROM icd10_codes WHERE id = $1`
	var code model.ICD10Code
	if err := r.GetDB().GetContext(ctx, &code, query, id); err != nil {
		return nil, fmt.Errorf("failed to get ICD-10 code: %w", err)
	}
	return &code, nil
}

func (r *icd10Repository) Search(ctx context.Context, term string) ([]*model.ICD10Code, error) {
	query := `
		SELECT id, code, description FROM icd10_codes
		WHERE LOWER(code) LIKE $1 OR LOWER(description) LIKE $1
		ORDER BY code ASC
		LIMIT 50
	`
	pattern := "%" + toLowerPattern(term) + "%"
	var codes []*model.ICD10Code
	if err := r.GetDB().SelectContext(ctx, &codes, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search ICD-10 codes: %w", err)
	}
	return codes, nil
}
