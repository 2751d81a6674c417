package prescription

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

type rxFixture struct {
	appointments  *fake.AppointmentRepo
	records       *fake.MedicalRecordRepo
	prescriptions *fake.PrescriptionRepo
	medicines     *fake.MedicineRepo
	svc           *Service
}

func newRxFixture() *rxFixture {
	f := &rxFixture{
		appointments:  fake.NewAppointmentRepo(),
		records:       fake.NewMedicalRecordRepo(),
		prescriptions: fake.NewPrescriptionRepo(),
		medicines:     fake.NewMedicineRepo(),
	}
	f.svc = NewService(f.appointments, f.records, f.prescriptions, f.medicines)
	return f
}

func (f *rxFixture) seedConsultation() {
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "In Consultation", PatientID: 10, DoctorID: 1})
	f.records.Add(&model.MedicalRecord{ID: 5, AppointmentID: 1}, 10)
	f.medicines.AddGroup(&model.MedicineGroup{ID: 1, Name: "Antibiotics"})
	f.medicines.Add(&model.Medicine{ID: 100, Code: "MED100", Name: "Amoxicillin", GroupID: 1, Strength: "500mg"})
	f.medicines.Add(&model.Medicine{ID: 101, Code: "MED101", Name: "Paracetamol", GroupID: 2, Strength: "650mg"})
}

func TestGetReturnsEmptyShellWithoutConsultation(t *testing.T) {
	f := newRxFixture()
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "Checked-in", PatientID: 10, DoctorID: 1})

	view, err := f.svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, view.ID)
	assert.Nil(t, view.Code)
	assert.Empty(t, view.Items)
}

func TestGetUnknownAppointment(t *testing.T) {
	f := newRxFixture()

	_, err := f.svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSaveRequiresConsultationRecord(t *testing.T) {
	f := newRxFixture()
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "Checked-in", PatientID: 10, DoctorID: 1})

	_, err := f.svc.Save(context.Background(), 1, &model.SavePrescriptionRequest{AppointmentID: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSaveRejectsUnknownMedicineBeforeWriting(t *testing.T) {
	f := newRxFixture()
	f.seedConsultation()

	_, err := f.svc.Save(context.Background(), 1, &model.SavePrescriptionRequest{
		AppointmentID: 1,
		Items: []model.PrescriptionItemRequest{
			{MedicineID: 100, Quantity: 10},
			{MedicineID: 999, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	// The whole save fails; nothing was written.
	assert.Zero(t, f.prescriptions.SaveCalls)
}

func TestSaveCreatesAndReplacesItems(t *testing.T) {
	f := newRxFixture()
	f.seedConsultation()

	view, err := f.svc.Save(context.Background(), 1, &model.SavePrescriptionRequest{
		AppointmentID: 1,
		Notes:         "after meals",
		Items: []model.PrescriptionItemRequest{
			{MedicineID: 100, Quantity: 10, Note: "1 tab twice daily"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, view.Code)
	assert.Regexp(t, regexp.MustCompile(`^P-[0-9A-F]{8}$`), *view.Code)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Amoxicillin", view.Items[0].MedicineName)
	firstCode := *view.Code

	// Saving again replaces the item set wholesale and keeps the code.
	again, err := f.svc.Save(context.Background(), 1, &model.SavePrescriptionRequest{
		AppointmentID: 1,
		Items: []model.PrescriptionItemRequest{
			{MedicineID: 101, Quantity: 6},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, firstCode, *again.Code)
	require.Len(t, again.Items, 1)
	assert.Equal(t, "Paracetamol", again.Items[0].MedicineName)
	assert.Equal(t, 2, f.prescriptions.SaveCalls)
}

func TestSearchMedicinesJoinsGroupNames(t *testing.T) {
	f := newRxFixture()
	f.seedConsultation()

	views, err := f.svc.SearchMedicines(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Antibiotics", views[0].GroupName)
	// A dangling group id falls back to Unknown instead of failing the list.
	assert.Equal(t, "Unknown", views[1].GroupName)
}
