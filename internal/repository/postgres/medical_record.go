package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	query := `SELECT * FROM medical_records WHERE id = $1`
	var record model.MedicalRecord
	if err := r.GetDB().GetContext(ctx, &record, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *medicalRecordRepository) GetByAppointment(ctx context.Context, appointmentID int64) (*model.MedicalRecord, error) {
	query := `SELECT * FROM medical_records WHERE appointment_id = $1`
	var record model.MedicalRecord
	if err := r.GetDB().GetContext(ctx, &record, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to get medical record by appointment: %w", err)
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	query := `
		SELECT mr.* FROM medical_records mr
		JOIN appointments a ON a.id = mr.appointment_id
		WHERE a.patient_id = $1
	`
	var records []*model.MedicalRecord
	if err := r.GetDB().SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medical records by patient: %w", err)
	}
	return records, nil
}

// UpsertByAppointment relies on the unique constraint on appointment_id:
// the insert either lands or folds into an update of the existing record.
// created_by survives updates; modified_by tracks the last editor.
func (r *medicalRecordRepository) UpsertByAppointment(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			appointment_id, vitals, symptoms, notes, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (appointment_id) DO UPDATE SET
			vitals = EXCLUDED.vitals,
			symptoms = EXCLUDED.symptoms,
			notes = EXCLUDED.notes,
			modified_by = $5,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_by
	`
	now := time.Now()
	err := r.GetDB().QueryRowxContext(ctx, query,
		record.AppointmentID,
		record.Vitals,
		record.Symptoms,
		record.Notes,
		record.CreatedBy,
		now,
	).Scan(&record.ID, &record.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to upsert medical record: %w", err)
	}
	record.UpdatedAt = now
	return nil
}
