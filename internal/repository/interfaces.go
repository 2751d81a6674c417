package repository

import (
	"context"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

// All repository interfaces in one file. Implementations wrap driver errors
// with fmt.Errorf; lookups that miss return an error wrapping sql.ErrNoRows
// so services can translate to NotFound.
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
		FindByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error)
		FindByDoctorAndDateRange(ctx context.Context, doctorID int64, start, end time.Time) ([]*model.Appointment, error)
		CountByDateRange(ctx context.Context, start, end time.Time) (int64, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context) ([]*model.Patient, error)
		FindByPhone(ctx context.Context, phone string) (*model.Patient, error)
		Search(ctx context.Context, term string) ([]*model.Patient, error)
		SearchByName(ctx context.Context, name string) ([]*model.Patient, error)
		CountDistinctByAppointmentRange(ctx context.Context, start, end time.Time) (int64, error)
		CountNewByAppointmentRange(ctx context.Context, start, end time.Time) (int64, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
		ListByRole(ctx context.Context, role int) ([]*model.User, error)
		Count(ctx context.Context) (int64, error)
		CountByRole(ctx context.Context, role int) (int64, error)
		CountByStatus(ctx context.Context, status string) (int64, error)
	}

	MedicalRecordRepository interface {
		Get(ctx context.Context, id int64) (*model.MedicalRecord, error)
		GetByAppointment(ctx context.Context, appointmentID int64) (*model.MedicalRecord, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
		// UpsertByAppointment inserts the record or, when one already exists
		// for the appointment, updates it in place as a single conditional
		// statement. The record ID is filled in either way.
		UpsertByAppointment(ctx context.Context, record *model.MedicalRecord) error
	}

	DiagnosisRepository interface {
		ListByRecord(ctx context.Context, recordID int64) ([]*model.Diagnosis, error)
		Create(ctx context.Context, diagnosis *model.Diagnosis) error
		Update(ctx context.Context, diagnosis *model.Diagnosis) error
	}

	ICD10Repository interface {
		Get(ctx context.Context, id int64) (*model.ICD10Code, error)
		Search(ctx context.Context, term string) ([]*model.ICD10Code, error)
	}

	PrescriptionRepository interface {
		GetByRecord(ctx context.Context, recordID int64) (*model.Prescription, error)
		ListItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error)
		// SaveWithItems upserts the prescription header by record and
		// replaces its entire item set in one transaction, so a reader never
		// observes a half-replaced list.
		SaveWithItems(ctx context.Context, prescription *model.Prescription, items []*model.PrescriptionItem) error
	}

	MedicineRepository interface {
		Get(ctx context.Context, id int64) (*model.Medicine, error)
		List(ctx context.Context) ([]*model.Medicine, error)
		Search(ctx context.Context, term string) ([]*model.Medicine, error)
		GetGroup(ctx context.Context, id int64) (*model.MedicineGroup, error)
	}

	ServiceRepository interface {
		List(ctx context.Context) ([]*model.ClinicService, error)
		ListTypes(ctx context.Context) ([]*model.ServiceType, error)
	}

	BillRepository interface {
		// PaidRevenueByDateRange sums paid bill totals issued in
		// [start, end); no rows means zero, not an error.
		PaidRevenueByDateRange(ctx context.Context, start, end time.Time) (float64, error)
	}
)
