package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			code, full_name, date_of_birth, gender, address, phone, email,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	err := r.GetDB().QueryRowxContext(ctx, query,
		patient.Code,
		patient.FullName,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.GetDB().GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, date_of_birth = $2, gender = $3, address = $4,
		    phone = $5, email = $6, updated_at = $7
		WHERE id = $8
	`
	patient.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		patient.FullName,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient %d not found", patient.ID)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY full_name ASC`
	var patients []*model.Patient
	if err := r.GetDB().SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) FindByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE phone = $1`
	var patient model.Patient
	if err := r.GetDB().GetContext(ctx, &patient, query, phone); err != nil {
		return nil, fmt.Errorf("failed to find patient by phone: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Search(ctx context.Context, term string) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE LOWER(full_name) LIKE $1
		   OR LOWER(phone) LIKE $1
		   OR LOWER(code) LIKE $1
		ORDER BY full_name ASC
	`
	pattern := "%" + toLowerPattern(term) + "%"
	var patients []*model.Patient
	if err := r.GetDB().SelectContext(ctx, &patients, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, name string) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE LOWER(full_name) LIKE $1
		ORDER BY full_name ASC
	`
	pattern := "%" + toLowerPattern(name) + "%"
	var patients []*model.Patient
	if err := r.GetDB().SelectContext(ctx, &patients, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search patients by name: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) CountDistinctByAppointmentRange(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT patient_id) FROM appointments
		WHERE date_time >= $1 AND date_time < $2
	`
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, query, start, end); err != nil {
		return 0, fmt.Errorf("failed to count distinct patients: %w", err)
	}
	return count, nil
}

// CountNewByAppointmentRange counts distinct patients whose earliest ever
// appointment falls inside the window, i.e. nothing booked before start.
func (r *patientRepository) CountNewByAppointmentRange(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT a.patient_id) FROM appointments a
		WHERE a.date_time >= $1 AND a.date_time < $2
		AND NOT EXISTS (
			SELECT 1 FROM appointments prior
			WHERE prior.patient_id = a.patient_id AND prior.date_time < $1
		)
	`
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, query, start, end); err != nil {
		return 0, fmt.Errorf("failed to count new patients: %w", err)
	}
	return count, nil
}
