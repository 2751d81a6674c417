package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/logger"
	"github.com/clinichq/clinic-api/pkg/messaging"
)

// StatusChangedChannel is the broker channel front-desk screens subscribe to.
const StatusChangedChannel = "appointments.status_changed"

// Service owns appointment status transitions. Overwrites are deliberately
// permissive (the front desk corrects mistakes by re-setting status); a
// stricter transition policy would slot in here without touching callers.
type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	broker       messaging.Broker
	logger       *logger.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	broker messaging.Broker,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		users:        users,
		broker:       broker,
		logger:       logger,
	}
}

// SetStatus overwrites the appointment status and returns the refreshed,
// fully joined view. changedBy is the authenticated staff member.
func (s *Service) SetStatus(ctx context.Context, appointmentID int64, newStatus string, changedBy int64) (*model.AppointmentDetails, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("appointment %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	oldStatus := appointment.Status
	if err := s.appointments.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to set appointment status: %w", err)
	}

	s.publishStatusChanged(ctx, &model.StatusChangedEvent{
		AppointmentID: appointmentID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ChangedBy:     changedBy,
		ChangedAt:     time.Now(),
	})

	return s.Details(ctx, appointmentID)
}

// StartConsultation moves the appointment into the consultation state.
func (s *Service) StartConsultation(ctx context.Context, appointmentID, doctorID int64) (*model.AppointmentDetails, error) {
	return s.SetStatus(ctx, appointmentID, model.StatusInConsultation, doctorID)
}

// Details returns the joined single-appointment view. Missing join targets
// are referential-integrity failures, not partial results.
func (s *Service) Details(ctx context.Context, appointmentID int64) (*model.AppointmentDetails, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("appointment %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		return nil, apperrors.ReferentialIntegrity(
			fmt.Sprintf("appointment %d references missing patient %d", appointment.ID, appointment.PatientID), err)
	}

	doctor, err := s.users.Get(ctx, appointment.DoctorID)
	if err != nil {
		return nil, apperrors.ReferentialIntegrity(
			fmt.Sprintf("appointment %d references missing doctor %d", appointment.ID, appointment.DoctorID), err)
	}

	email := ""
	if patient.Email != nil {
		email = *patient.Email
	}

	return &model.AppointmentDetails{
		ID:             appointment.ID,
		DateTime:       appointment.DateTime,
		Status:         appointment.Status,
		PatientID:      patient.ID,
		PatientCode:    patient.Code,
		PatientName:    patient.FullName,
		DateOfBirth:    patient.DateOfBirth,
		Gender:         patient.Gender,
		Address:        patient.Address,
		Phone:          patient.Phone,
		Email:          email,
		DoctorID:       doctor.ID,
		DoctorName:     doctor.DisplayName(),
		ReceptionistID: appointment.ReceptionistID,
	}, nil
}

// publishStatusChanged is best effort: the live screens refresh on poll
// anyway, so a broker outage must not fail the transition.
func (s *Service) publishStatusChanged(ctx context.Context, event *model.StatusChangedEvent) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, StatusChangedChannel, messaging.Message{
		Type:    "status_changed",
		Payload: event,
	}); err != nil {
		s.logger.Error(err, "failed to publish status change",
			"appointment_id", event.AppointmentID)
	}
}
