package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		users:        users,
	}
}

// Dashboard splits the doctor's today-set into upcoming visits
// ({Scheduled, Checked-in}) and the waiting queue ({Checked-in,
// In Consultation, Completed}). A checked-in patient is on both lists:
// arrived, not yet called.
func (s *Service) Dashboard(ctx context.Context, doctorID int64, now time.Time) (*model.DoctorDashboard, error) {
	doctor, err := s.users.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("doctor %d not found", doctorID)
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	appointments, err := s.appointments.FindByDoctorAndDateRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor's appointments: %w", err)
	}

	var upcoming, waiting []*model.AppointmentView
	for _, appointment := range appointments {
		class := model.Classify(appointment.Status)
		if !class.Upcoming() && !class.InLiveQueue() {
			continue
		}

		view, err := s.toView(ctx, appointment)
		if err != nil {
			return nil, err
		}
		if class.Upcoming() {
			upcoming = append(upcoming, view)
		}
		if class.InLiveQueue() {
			waiting = append(waiting, view)
		}
	}

	return &model.DoctorDashboard{
		DoctorName:        doctor.DisplayName(),
		TodayAppointments: upcoming,
		WaitingQueue:      waiting,
	}, nil
}

func (s *Service) toView(ctx context.Context, appointment *model.Appointment) (*model.AppointmentView, error) {
	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		return nil, apperrors.ReferentialIntegrity(
			fmt.Sprintf("appointment %d references missing patient %d", appointment.ID, appointment.PatientID), err)
	}

	return &model.AppointmentView{
		ID:          appointment.ID,
		DateTime:    appointment.DateTime,
		Status:      appointment.Status,
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		PatientCode: patient.Code,
		DoctorID:    appointment.DoctorID,
	}, nil
}
