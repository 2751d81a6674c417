package reception

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/email"
	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/logger"
)

// totalSlotsToday is the fixed per-day capacity shown on the dashboard.
// Slot planning is out of scope; the front desk only wants a denominator.
const totalSlotsToday = 30

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	bills        repository.BillRepository
	notifier     email.Service
	logger       *logger.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	bills repository.BillRepository,
	notifier email.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		users:        users,
		bills:        bills,
		notifier:     notifier,
		logger:       logger,
	}
}

// dayWindow returns [start of day, last instant of day] for now's date.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// Dashboard builds the receptionist home view for now's date: counters,
// today's schedule with persisted statuses, and the live queue with
// relabeled display statuses.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*model.ReceptionDashboard, error) {
	start, end := dayWindow(now)

	all, err := s.appointments.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's appointments: %w", err)
	}

	var (
		today     []*model.AppointmentView
		liveQueue []*model.AppointmentView
		checkedIn int64
		waiting   int64
	)
	for _, appointment := range all {
		class := model.Classify(appointment.Status)
		if class == model.ClassCheckedIn {
			checkedIn++
		}
		if class.InLiveQueue() {
			waiting++
		}

		if class.OnTodayList() {
			view, err := s.toView(ctx, appointment)
			if err != nil {
				return nil, err
			}
			today = append(today, view)
		}
		if class.InLiveQueue() {
			view, err := s.toView(ctx, appointment)
			if err != nil {
				return nil, err
			}
			// Presentation relabel only; the persisted status is untouched.
			view.Status = model.QueueDisplayStatus(class)
			liveQueue = append(liveQueue, view)
		}
	}

	revenue, err := s.bills.PaidRevenueByDateRange(ctx, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to compute estimated revenue: %w", err)
	}

	return &model.ReceptionDashboard{
		AppointmentsToday: int64(len(today)),
		TotalSlotsToday:   totalSlotsToday,
		PatientsCheckedIn: checkedIn,
		PatientsWaiting:   waiting,
		EstimatedRevenue:  revenue,
		TodayAppointments: today,
		LiveQueue:         liveQueue,
	}, nil
}

// WeekSchedule lists all appointments in the Monday..Sunday week containing
// weekStart, with persisted statuses.
func (s *Service) WeekSchedule(ctx context.Context, weekStart time.Time) ([]*model.AppointmentView, error) {
	monday := weekStart
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

	appointments, err := s.appointments.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load week appointments: %w", err)
	}

	views := make([]*model.AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		view, err := s.toView(ctx, appointment)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateAppointment books a visit. receptionistID is the authenticated
// caller, threaded in explicitly rather than read from ambient state.
func (s *Service) CreateAppointment(ctx context.Context, receptionistID int64, req *model.CreateAppointmentRequest) (*model.AppointmentView, error) {
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("patient %d not found", req.PatientID)
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	doctor, err := s.users.Get(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("doctor %d not found", req.DoctorID)
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor.Role != model.RoleDoctor {
		return nil, apperrors.Validation(fmt.Sprintf("user %d is not a doctor", req.DoctorID))
	}

	appointment := &model.Appointment{
		DateTime:       req.DateTime,
		Status:         model.StatusScheduled,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		ReceptionistID: receptionistID,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.sendConfirmation(ctx, patient, doctor, appointment)

	return &model.AppointmentView{
		ID:          appointment.ID,
		DateTime:    appointment.DateTime,
		Status:      appointment.Status,
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		PatientCode: patient.Code,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.DisplayName(),
	}, nil
}

// SearchPatientsByName finds patients for the booking form. An empty name
// lists everyone.
func (s *Service) SearchPatientsByName(ctx context.Context, name string) ([]*model.Patient, error) {
	if name == "" {
		patients, err := s.patients.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list patients: %w", err)
		}
		return patients, nil
	}
	patients, err := s.patients.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.StaffView, error) {
	doctors, err := s.users.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	views := make([]*model.StaffView, 0, len(doctors))
	for _, doctor := range doctors {
		views = append(views, model.NewStaffView(doctor))
	}
	return views, nil
}

func (s *Service) toView(ctx context.Context, appointment *model.Appointment) (*model.AppointmentView, error) {
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

	return &model.AppointmentView{
		ID:          appointment.ID,
		DateTime:    appointment.DateTime,
		Status:      appointment.Status,
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		PatientCode: patient.Code,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.DisplayName(),
	}, nil
}

func (s *Service) sendConfirmation(ctx context.Context, patient *model.Patient, doctor *model.User, appointment *model.Appointment) {
	if s.notifier == nil || patient.Email == nil || *patient.Email == "" {
		return
	}
	if err := s.notifier.SendAppointmentConfirmation(ctx, *patient.Email, patient.FullName, doctor.DisplayName(), appointment.DateTime); err != nil {
		s.logger.Error(err, "failed to send appointment confirmation",
			"appointment_id", appointment.ID)
	}
}
