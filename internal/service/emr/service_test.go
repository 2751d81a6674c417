package emr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

type emrFixture struct {
	appointments *fake.AppointmentRepo
	patients     *fake.PatientRepo
	records      *fake.MedicalRecordRepo
	diagnoses    *fake.DiagnosisRepo
	icd10        *fake.ICD10Repo
	users        *fake.UserRepo
	svc          *Service
}

func newEMRFixture() *emrFixture {
	f := &emrFixture{
		appointments: fake.NewAppointmentRepo(),
		patients:     fake.NewPatientRepo(),
		records:      fake.NewMedicalRecordRepo(),
		diagnoses:    fake.NewDiagnosisRepo(),
		icd10:        fake.NewICD10Repo(),
		users:        fake.NewUserRepo(),
	}
	f.svc = NewService(f.appointments, f.patients, f.records, f.diagnoses, f.icd10, f.users)
	return f
}

func TestEMRHistoryNewestFirstWithSentinels(t *testing.T) {
	f := newEMRFixture()
	f.users.Add(&model.User{ID: 1, Username: "drjones", FullName: "Dr. Jones", Role: model.RoleDoctor})
	f.patients.Add(&model.Patient{
		ID: 10, Code: "P202601010001", FullName: "Alice Tran",
		DateOfBirth: time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC), Gender: "Female",
	})

	for i := 1; i <= 3; i++ {
		f.appointments.Add(&model.Appointment{
			ID:        int64(i),
			DateTime:  time.Date(2026, 8, i, 9, 0, 0, 0, time.UTC),
			Status:    "Completed",
			PatientID: 10,
			DoctorID:  1,
		})
	}
	f.records.Add(&model.MedicalRecord{ID: 1, AppointmentID: 1, Symptoms: "cough"}, 10)
	f.records.Add(&model.MedicalRecord{ID: 2, AppointmentID: 2, Symptoms: ""}, 10)
	f.records.Add(&model.MedicalRecord{ID: 3, AppointmentID: 3, Symptoms: "fever"}, 10)

	desc := "Acute pharyngitis"
	f.diagnoses.Add(&model.Diagnosis{ID: 1, RecordID: 3, ICD10CodeID: 7, Description: &desc})
	f.icd10.Add(&model.ICD10Code{ID: 7, Code: "J02.9", Description: "Acute pharyngitis, unspecified"})

	record, err := f.svc.EMR(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Alice Tran", record.FullName)
	assert.Equal(t, "P202601010001", record.PatientCode)

	require.Len(t, record.VisitHistory, 3)
	assert.Equal(t, int64(3), record.VisitHistory[0].AppointmentID)
	assert.Equal(t, int64(2), record.VisitHistory[1].AppointmentID)
	assert.Equal(t, int64(1), record.VisitHistory[2].AppointmentID)

	newest := record.VisitHistory[0]
	assert.Equal(t, "Acute pharyngitis", newest.PrimaryDiagnosis)
	assert.Equal(t, "J02.9", newest.DiagnosisCode)
	assert.Equal(t, "Dr. Jones", newest.DoctorName)

	// No diagnosis and blank symptoms render as N/A, never as errors.
	undiagnosed := record.VisitHistory[1]
	assert.Equal(t, "N/A", undiagnosed.PrimaryDiagnosis)
	assert.Equal(t, "N/A", undiagnosed.DiagnosisCode)
	assert.Equal(t, "N/A", undiagnosed.Symptoms)
}

func TestEMRSkipsRecordsWithMissingAppointment(t *testing.T) {
	f := newEMRFixture()
	f.users.Add(&model.User{ID: 1, FullName: "Dr. Jones", Role: model.RoleDoctor})
	f.patients.Add(&model.Patient{ID: 10, FullName: "Alice Tran", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)})
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "Completed", PatientID: 10, DoctorID: 1})

	f.records.Add(&model.MedicalRecord{ID: 1, AppointmentID: 1, Symptoms: "cough"}, 10)
	// Record 2 points at an appointment that no longer exists.
	f.records.Add(&model.MedicalRecord{ID: 2, AppointmentID: 999, Symptoms: "ghost"}, 10)

	record, err := f.svc.EMR(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, record.VisitHistory, 1)
	assert.Equal(t, int64(1), record.VisitHistory[0].AppointmentID)
}

func TestEMRUnknownDoctorName(t *testing.T) {
	f := newEMRFixture()
	f.patients.Add(&model.Patient{ID: 10, FullName: "Alice Tran", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)})
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "Completed", PatientID: 10, DoctorID: 404})
	f.records.Add(&model.MedicalRecord{ID: 1, AppointmentID: 1, Symptoms: "cough"}, 10)

	record, err := f.svc.EMR(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, record.VisitHistory, 1)
	assert.Equal(t, "Unknown", record.VisitHistory[0].DoctorName)
}

func TestEMRUnknownAppointment(t *testing.T) {
	f := newEMRFixture()

	_, err := f.svc.EMR(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAgeAtFloorsWholeYears(t *testing.T) {
	dob := time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, ageAt(dob, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, ageAt(dob, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, ageAt(dob, time.Date(2000, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSaveConsultationUpsertsRecordAndDiagnosis(t *testing.T) {
	f := newEMRFixture()
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "In Consultation", PatientID: 10, DoctorID: 1})
	f.icd10.Add(&model.ICD10Code{ID: 7, Code: "J02.9", Description: "Acute pharyngitis, unspecified"})

	err := f.svc.SaveConsultation(context.Background(), 1, &model.SaveConsultationRequest{
		AppointmentID: 1, Vitals: "BP 120/80", Symptoms: "cough", ICD10CodeID: 7,
	})
	require.NoError(t, err)

	record, err := f.records.GetByAppointment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "BP 120/80", record.Vitals)

	diagnoses, _ := f.diagnoses.ListByRecord(context.Background(), record.ID)
	require.Len(t, diagnoses, 1)
	assert.Equal(t, int64(7), diagnoses[0].ICD10CodeID)

	// A second save updates both in place instead of appending.
	f.icd10.Add(&model.ICD10Code{ID: 8, Code: "J03.0", Description: "Streptococcal tonsillitis"})
	err = f.svc.SaveConsultation(context.Background(), 1, &model.SaveConsultationRequest{
		AppointmentID: 1, Vitals: "BP 118/76", Symptoms: "sore throat", ICD10CodeID: 8,
	})
	require.NoError(t, err)

	updated, err := f.records.GetByAppointment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, "BP 118/76", updated.Vitals)

	diagnoses, _ = f.diagnoses.ListByRecord(context.Background(), record.ID)
	require.Len(t, diagnoses, 1)
	assert.Equal(t, int64(8), diagnoses[0].ICD10CodeID)
}

func TestSaveConsultationUnknownAppointment(t *testing.T) {
	f := newEMRFixture()

	err := f.svc.SaveConsultation(context.Background(), 1, &model.SaveConsultationRequest{AppointmentID: 404})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConsultationDataBeforeFirstSave(t *testing.T) {
	f := newEMRFixture()
	f.appointments.Add(&model.Appointment{ID: 1, DateTime: time.Now(), Status: "Checked-in", PatientID: 10, DoctorID: 1})

	data, err := f.svc.ConsultationData(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.AppointmentID)
	assert.Nil(t, data.Vitals)
	assert.Nil(t, data.ICD10CodeID)
}

func TestSearchICD10(t *testing.T) {
	f := newEMRFixture()
	f.icd10.Add(&model.ICD10Code{ID: 7, Code: "J02.9", Description: "Acute pharyngitis, unspecified"})

	t.Run("empty term returns empty list without hitting the store", func(t *testing.T) {
		codes, err := f.svc.SearchICD10(context.Background(), "   ")
		require.NoError(t, err)
		assert.Empty(t, codes)
		assert.Zero(t, f.icd10.SearchCalls)
	})

	t.Run("repeat searches are served from cache", func(t *testing.T) {
		first, err := f.svc.SearchICD10(context.Background(), "pharyngitis")
		require.NoError(t, err)
		require.Len(t, first, 1)

		second, err := f.svc.SearchICD10(context.Background(), "Pharyngitis")
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, 1, f.icd10.SearchCalls)
	})
}
