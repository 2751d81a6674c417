package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
)

// Service computes the admin dashboard. Pure read-side aggregation over a
// caller-supplied "now"; every count zero-defaults on an empty store.
type Service struct {
	bills        repository.BillRepository
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
}

func NewService(
	bills repository.BillRepository,
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
) *Service {
	return &Service{
		bills:        bills,
		appointments: appointments,
		patients:     patients,
		users:        users,
	}
}

func (s *Service) Stats(ctx context.Context, now time.Time) (*model.DashboardStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, err := s.bills.PaidRevenueByDateRange(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to compute today's revenue: %w", err)
	}

	patientsToday, err := s.patients.CountDistinctByAppointmentRange(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients seen today: %w", err)
	}

	newPatients, err := s.patients.CountNewByAppointmentRange(ctx, startOfMonth, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count new patients this month: %w", err)
	}

	booked, err := s.appointments.CountByDateRange(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to count booked appointments: %w", err)
	}

	totalStaff, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count staff: %w", err)
	}

	totalDoctors, err := s.users.CountByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}

	totalReceptionists, err := s.users.CountByRole(ctx, model.RoleReceptionist)
	if err != nil {
		return nil, fmt.Errorf("failed to count receptionists: %w", err)
	}

	activeStaff, err := s.users.CountByStatus(ctx, model.UserStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active staff: %w", err)
	}

	return &model.DashboardStats{
		TodayRevenue:       revenue,
		PatientsToday:      patientsToday,
		NewPatientsMonth:   newPatients,
		AppointmentsBooked: booked,
		TotalStaff:         totalStaff,
		TotalDoctors:       totalDoctors,
		TotalReceptionists: totalReceptionists,
		ActiveStaff:        activeStaff,
	}, nil
}
