package reception

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func seedStaffAndPatient(users *fake.UserRepo, patients *fake.PatientRepo) {
	users.Add(&model.User{ID: 1, Username: "drjones", FullName: "Dr. Jones", Role: model.RoleDoctor, Status: model.UserStatusActive})
	users.Add(&model.User{ID: 2, Username: "frontdesk", FullName: "Front Desk", Role: model.RoleReceptionist, Status: model.UserStatusActive})
	patients.Add(&model.Patient{ID: 10, Code: "P202601010001", FullName: "Alice Tran", Phone: "0901000001"})
}

func TestDashboardQueueMembershipAndRelabel(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seedStaffAndPatient(users, patients)

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	statuses := []string{
		"Scheduled",
		"Checked-in",
		"check-in", // legacy spelling, still checked in
		"In Consultation",
		"Completed",
		"Cancelled",
		"mystery-status",
	}
	for i, status := range statuses {
		appointments.Add(&model.Appointment{
			ID:        int64(i + 1),
			DateTime:  now.Add(time.Duration(i) * time.Minute),
			Status:    status,
			PatientID: 10,
			DoctorID:  1,
		})
	}
	// Yesterday's appointment must not leak into today's view.
	appointments.Add(&model.Appointment{
		ID: 99, DateTime: now.AddDate(0, 0, -1), Status: "Checked-in", PatientID: 10, DoctorID: 1,
	})

	svc := NewService(appointments, patients, users, &fake.BillRepo{Revenue: 125.50}, nil, testLogger())

	dashboard, err := svc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	// Cancelled and unknown statuses stay off the today list.
	assert.Equal(t, int64(5), dashboard.AppointmentsToday)
	assert.Len(t, dashboard.TodayAppointments, 5)
	assert.Equal(t, int64(30), dashboard.TotalSlotsToday)

	assert.Equal(t, int64(2), dashboard.PatientsCheckedIn)
	assert.Equal(t, int64(4), dashboard.PatientsWaiting)
	assert.Len(t, dashboard.LiveQueue, 4)
	assert.Equal(t, 125.50, dashboard.EstimatedRevenue)

	labels := make([]string, 0, len(dashboard.LiveQueue))
	for _, entry := range dashboard.LiveQueue {
		labels = append(labels, entry.Status)
	}
	assert.Equal(t, []string{"Waiting", "Waiting", "In Consultation", "Ready for Billing"}, labels)

	// The relabel is presentation only; persisted statuses are untouched.
	assert.Equal(t, "Checked-in", appointments.Appointments[2].Status)
	assert.Equal(t, "check-in", appointments.Appointments[3].Status)

	// The today list shows persisted statuses, not queue labels.
	for _, entry := range dashboard.TodayAppointments {
		assert.NotEqual(t, "Ready for Billing", entry.Status)
	}
	assert.Equal(t, "Scheduled", dashboard.TodayAppointments[0].Status)
	assert.Equal(t, "Completed", dashboard.TodayAppointments[4].Status)
}

func TestDashboardFailsOnMissingJoinTarget(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seedStaffAndPatient(users, patients)

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	appointments.Add(&model.Appointment{
		ID: 1, DateTime: now, Status: "Checked-in", PatientID: 404, DoctorID: 1,
	})

	svc := NewService(appointments, patients, users, &fake.BillRepo{}, nil, testLogger())

	_, err := svc.Dashboard(context.Background(), now)
	require.Error(t, err)
	assert.True(t, apperrors.IsReferentialIntegrity(err))
}

func TestWeekScheduleSpansMondayToSunday(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seedStaffAndPatient(users, patients)

	// 2026-08-28 is a Friday; its week runs Mon 24th through Sun 30th.
	friday := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	appointments.Add(&model.Appointment{ID: 1, DateTime: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), Status: "Scheduled", PatientID: 10, DoctorID: 1})
	appointments.Add(&model.Appointment{ID: 2, DateTime: time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), Status: "Cancelled", PatientID: 10, DoctorID: 1})
	appointments.Add(&model.Appointment{ID: 3, DateTime: time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC), Status: "Scheduled", PatientID: 10, DoctorID: 1})
	appointments.Add(&model.Appointment{ID: 4, DateTime: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Status: "Scheduled", PatientID: 10, DoctorID: 1})

	svc := NewService(appointments, patients, users, &fake.BillRepo{}, nil, testLogger())

	views, err := svc.WeekSchedule(context.Background(), friday)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	// The week view keeps cancelled visits visible with their real status.
	assert.Equal(t, "Cancelled", views[1].Status)
}

func TestCreateAppointment(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seedStaffAndPatient(users, patients)

	svc := NewService(appointments, patients, users, &fake.BillRepo{}, nil, testLogger())
	when := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	t.Run("unknown patient", func(t *testing.T) {
		_, err := svc.CreateAppointment(context.Background(), 2, &model.CreateAppointmentRequest{
			PatientID: 404, DoctorID: 1, DateTime: when,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("target user is not a doctor", func(t *testing.T) {
		_, err := svc.CreateAppointment(context.Background(), 2, &model.CreateAppointmentRequest{
			PatientID: 10, DoctorID: 2, DateTime: when,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("books as scheduled", func(t *testing.T) {
		view, err := svc.CreateAppointment(context.Background(), 2, &model.CreateAppointmentRequest{
			PatientID: 10, DoctorID: 1, DateTime: when,
		})
		require.NoError(t, err)
		assert.Equal(t, "Scheduled", view.Status)
		assert.Equal(t, "Alice Tran", view.PatientName)
		assert.Equal(t, "Dr. Jones", view.DoctorName)

		stored := appointments.Appointments[view.ID]
		require.NotNil(t, stored)
		assert.Equal(t, int64(2), stored.ReceptionistID)
	})
}
