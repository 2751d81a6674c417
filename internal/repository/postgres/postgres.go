package postgres

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/clinichq/clinic-api/internal/repository"
)

// toLowerPattern normalizes a user-supplied search term for a
// case-insensitive LIKE match.
func toLowerPattern(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

type appointmentRepository struct {
	BaseRepository
}

type patientRepository struct {
	BaseRepository
}

type userRepository struct {
	BaseRepository
}

type medicalRecordRepository struct {
	BaseRepository
}

type diagnosisRepository struct {
	BaseRepository
}

type icd10Repository struct {
	BaseRepository
}

type prescriptionRepository struct {
	BaseRepository
}

type medicineRepository struct {
	BaseRepository
}

type serviceRepository struct {
	BaseRepository
}

type billRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{NewBaseRepository(db)}
}

func NewDiagnosisRepository(db *sqlx.DB) repository.DiagnosisRepository {
	return &diagnosisRepository{NewBaseRepository(db)}
}

func NewICD10Repository(db *sqlx.DB) repository.ICD10Repository {
	return &icd10Repository{NewBaseRepository(db)}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{NewBaseRepository(db)}
}

func NewMedicineRepository(db *sqlx.DB) repository.MedicineRepository {
	return &medicineRepository{NewBaseRepository(db)}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{NewBaseRepository(db)}
}

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{NewBaseRepository(db)}
}
