package visit

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
	"github.com/clinichq/clinic-api/pkg/messaging"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func seed(appointments *fake.AppointmentRepo, patients *fake.PatientRepo, users *fake.UserRepo) {
	users.Add(&model.User{ID: 1, Username: "drjones", FullName: "Dr. Jones", Role: model.RoleDoctor})
	patients.Add(&model.Patient{ID: 10, Code: "P202601010001", FullName: "Alice Tran", Phone: "0901000001"})
	appointments.Add(&model.Appointment{
		ID:        1,
		DateTime:  time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		Status:    "Scheduled",
		PatientID: 10,
		DoctorID:  1,
	})
}

func TestSetStatusOverwritesAndPublishes(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seed(appointments, patients, users)
	broker := &fake.Broker{}

	svc := NewService(appointments, patients, users, broker, testLogger())

	details, err := svc.SetStatus(context.Background(), 1, model.StatusCheckedIn, 2)
	require.NoError(t, err)
	assert.Equal(t, "Checked-in", details.Status)
	assert.Equal(t, "Alice Tran", details.PatientName)
	assert.Equal(t, "Dr. Jones", details.DoctorName)

	require.Len(t, broker.Published, 1)
	assert.Equal(t, StatusChangedChannel, broker.Published[0].Channel)
	msg, ok := broker.Published[0].Message.(messaging.Message)
	require.True(t, ok)
	event, ok := msg.Payload.(*model.StatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "Scheduled", event.OldStatus)
	assert.Equal(t, "Checked-in", event.NewStatus)
	assert.Equal(t, int64(2), event.ChangedBy)
}

func TestSetStatusSurvivesBrokerOutage(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seed(appointments, patients, users)
	broker := &fake.Broker{Err: assert.AnError}

	svc := NewService(appointments, patients, users, broker, testLogger())

	details, err := svc.SetStatus(context.Background(), 1, model.StatusCompleted, 2)
	require.NoError(t, err)
	assert.Equal(t, "Completed", details.Status)
}

func TestSetStatusWithoutBroker(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seed(appointments, patients, users)

	svc := NewService(appointments, patients, users, nil, testLogger())

	_, err := svc.SetStatus(context.Background(), 1, model.StatusCancelled, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", appointments.Appointments[1].Status)
}

func TestStartConsultation(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	seed(appointments, patients, users)

	svc := NewService(appointments, patients, users, nil, testLogger())

	details, err := svc.StartConsultation(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "In Consultation", details.Status)
}

func TestSetStatusUnknownAppointment(t *testing.T) {
	svc := NewService(fake.NewAppointmentRepo(), fake.NewPatientRepo(), fake.NewUserRepo(), nil, testLogger())

	_, err := svc.SetStatus(context.Background(), 404, model.StatusCheckedIn, 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDetailsMissingDoctorIsReferentialFailure(t *testing.T) {
	appointments := fake.NewAppointmentRepo()
	patients := fake.NewPatientRepo()
	users := fake.NewUserRepo()
	patients.Add(&model.Patient{ID: 10, FullName: "Alice Tran"})
	appointments.Add(&model.Appointment{ID: 1, Status: "Scheduled", PatientID: 10, DoctorID: 404})

	svc := NewService(appointments, patients, users, nil, testLogger())

	_, err := svc.Details(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsReferentialIntegrity(err))
}
