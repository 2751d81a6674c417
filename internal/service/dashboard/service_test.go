package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
)

func TestStatsZeroDefaultsOnEmptyStore(t *testing.T) {
	svc := NewService(&fake.BillRepo{}, fake.NewAppointmentRepo(), fake.NewPatientRepo(), fake.NewUserRepo())

	stats, err := svc.Stats(context.Background(), time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Zero(t, stats.TodayRevenue)
	assert.Zero(t, stats.PatientsToday)
	assert.Zero(t, stats.NewPatientsMonth)
	assert.Zero(t, stats.AppointmentsBooked)
	assert.Zero(t, stats.TotalStaff)
	assert.Zero(t, stats.TotalDoctors)
	assert.Zero(t, stats.TotalReceptionists)
	assert.Zero(t, stats.ActiveStaff)
}

func TestStatsCountsStaffAndBookings(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	users := fake.NewUserRepo()

	users.Add(&model.User{ID: 1, Role: model.RoleAdmin, Status: model.UserStatusActive})
	users.Add(&model.User{ID: 2, Role: model.RoleDoctor, Status: model.UserStatusActive})
	users.Add(&model.User{ID: 3, Role: model.RoleDoctor, Status: model.UserStatusInactive})
	users.Add(&model.User{ID: 4, Role: model.RoleReceptionist, Status: model.UserStatusActive})

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	// Booked window is [now, now+7d): one inside (any status), one on the
	// boundary outside, one in the past.
	appointments.Add(&model.Appointment{ID: 1, DateTime: now.AddDate(0, 0, 3), Status: "Cancelled", PatientID: 1, DoctorID: 2})
	appointments.Add(&model.Appointment{ID: 2, DateTime: now.AddDate(0, 0, 7), Status: "Scheduled", PatientID: 1, DoctorID: 2})
	appointments.Add(&model.Appointment{ID: 3, DateTime: now.AddDate(0, 0, -1), Status: "Scheduled", PatientID: 1, DoctorID: 2})

	svc := NewService(&fake.BillRepo{Revenue: 420}, appointments, fake.NewPatientRepo(), users)

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 420.0, stats.TodayRevenue)
	assert.Equal(t, int64(1), stats.AppointmentsBooked)
	assert.Equal(t, int64(4), stats.TotalStaff)
	assert.Equal(t, int64(2), stats.TotalDoctors)
	assert.Equal(t, int64(1), stats.TotalReceptionists)
	assert.Equal(t, int64(3), stats.ActiveStaff)
}
