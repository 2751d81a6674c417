package postgres

import (
	"context"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *diagnosisRepository) ListByRecord(ctx context.Context, recordID int64) ([]*model.Diagnosis, error) {
	query := `
		SELECT id, record_id, icd10_code_id, description, date, created_by
		FROM diagnoses
		WHERE record_id = $1
		ORDER BY id ASC
	`
	var diagnoses []*model.Diagnosis
	if err := r.GetDB().SelectContext(ctx, &diagnoses, query, recordID); err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *model.Diagnosis) error {
	query := `
		INSERT INTO diagnoses (record_id, icd10_code_id, description, date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.GetDB().QueryRowxContext(ctx, query,
		diagnosis.RecordID,
		diagnosis.ICD10CodeID,
		diagnosis.Description,
		diagnosis.Date,
		diagnosis.CreatedBy,
	).Scan(&diagnosis.ID)
	if err != nil {
		return fmt.Errorf("failed to create diagnosis: %w", err)
	}
	return nil
}

func (r *diagnosisRepository) Update(ctx context.Context, diagnosis *model.Diagnosis) error {
	query := `
		UPDATE diagnoses
		SET icd10_code_id = $1, description = $2, date = $3
		WHERE id = $4
	`
	result, err := r.GetDB().ExecContext(ctx, query,
		diagnosis.ICD10CodeID,
		diagnosis.Description,
		diagnosis.Date,
		diagnosis.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update diagnosis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("diagnosis %d not found", diagnosis.ID)
	}
	return nil
}
