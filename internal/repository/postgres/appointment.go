package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			date_time, status, patient_id, doctor_id, receptionist_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	err := r.GetDB().QueryRowxContext(ctx, query,
		appointment.DateTime,
		appointment.Status,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ReceptionistID,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, date_time, status, patient_id, doctor_id, receptionist_id,
		       created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.GetDB().GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.GetDB().ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d not found", id)
	}
	return nil
}

func (r *appointmentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, date_time, status, patient_id, doctor_id, receptionist_id,
		       created_at, updated_at
		FROM appointments
		WHERE date_time >= $1 AND date_time <= $2
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.GetDB().SelectContext(ctx, &appointments, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list appointments by date range: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDateRange(ctx context.Context, doctorID int64, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, date_time, status, patient_id, doctor_id, receptionist_id,
		       created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND date_time >= $2 AND date_time <= $3
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.GetDB().SelectContext(ctx, &appointments, query, doctorID, start, end); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByDateRange(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE date_time >= $1 AND date_time < $2
	`
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, query, start, end); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
