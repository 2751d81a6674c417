package emr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

// notAvailable is the sentinel shown when a record has no diagnosis yet.
// The UI renders it verbatim, so it is part of the contract.
const notAvailable = "N/A"

const (
	icd10CacheTTL     = 5 * time.Minute
	icd10CacheCleanup = 10 * time.Minute
)

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	records      repository.MedicalRecordRepository
	diagnoses    repository.DiagnosisRepository
	icd10        repository.ICD10Repository
	users        repository.UserRepository
	searchCache  *cache.Cache
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	records repository.MedicalRecordRepository,
	diagnoses repository.DiagnosisRepository,
	icd10 repository.ICD10Repository,
	users repository.UserRepository,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		records:      records,
		diagnoses:    diagnoses,
		icd10:        icd10,
		users:        users,
		searchCache:  cache.New(icd10CacheTTL, icd10CacheCleanup),
	}
}

// EMR assembles the patient's full visit history for the patient behind
// the given appointment, newest record first (record ids are monotonic, so
// id order stands in for creation order).
func (s *Service) EMR(ctx context.Context, appointmentID int64) (*model.EMR, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("appointment %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		return nil, apperrors.ReferentialIntegrity(
			fmt.Sprintf("appointment %d references missing patient %d", appointment.ID, appointment.PatientID), err)
	}

	records, err := s.records.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medical records: %w", err)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })

	history := make([]model.VisitHistory, 0, len(records))
	for _, record := range records {
		entry, ok, err := s.historyEntry(ctx, record)
		if err != nil {
			return nil, err
		}
		if !ok {
			// A record whose appointment is gone is skipped: the history is
			// a display read, not an editable joined list.
			continue
		}
		history = append(history, entry)
	}

	return &model.EMR{
		PatientID:    patient.ID,
		PatientCode:  patient.Code,
		FullName:     patient.FullName,
		DateOfBirth:  patient.DateOfBirth,
		Age:          ageAt(patient.DateOfBirth, time.Now()),
		Gender:       patient.Gender,
		VisitHistory: history,
	}, nil
}

func (s *Service) historyEntry(ctx context.Context, record *model.MedicalRecord) (model.VisitHistory, bool, error) {
	appointment, err := s.appointments.Get(ctx, record.AppointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.VisitHistory{}, false, nil
		}
		return model.VisitHistory{}, false, fmt.Errorf("failed to load record appointment: %w", err)
	}

	primaryDiagnosis := notAvailable
	diagnosisCode := notAvailable
	diagnoses, err := s.diagnoses.ListByRecord(ctx, record.ID)
	if err != nil {
		return model.VisitHistory{}, false, fmt.Errorf("failed to load diagnoses: %w", err)
	}
	if len(diagnoses) > 0 {
		primary := diagnoses[0]
		if primary.Description != nil && *primary.Description != "" {
			primaryDiagnosis = *primary.Description
		}
		if code, err := s.icd10.Get(ctx, primary.ICD10CodeID); err == nil {
			diagnosisCode = code.Code
		}
	}

	symptoms := record.Symptoms
	if symptoms == "" {
		symptoms = notAvailable
	}

	return model.VisitHistory{
		AppointmentID:    record.AppointmentID,
		DateTime:         appointment.DateTime,
		Symptoms:         symptoms,
		PrimaryDiagnosis: primaryDiagnosis,
		DiagnosisCode:    diagnosisCode,
		DoctorName:       s.doctorName(ctx, appointment.DoctorID),
	}, true, nil
}

func (s *Service) doctorName(ctx context.Context, doctorID int64) string {
	doctor, err := s.users.Get(ctx, doctorID)
	if err != nil {
		return "Unknown"
	}
	return doctor.DisplayName()
}

// SaveConsultation upserts the appointment's medical record and keeps a
// single active diagnosis per record: the first one found is updated in
// place rather than appending.
func (s *Service) SaveConsultation(ctx context.Context, doctorID int64, req *model.SaveConsultationRequest) error {
	if _, err := s.appointments.Get(ctx, req.AppointmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundf("appointment %d not found", req.AppointmentID)
		}
		return fmt.Errorf("failed to load appointment: %w", err)
	}

	record := &model.MedicalRecord{
		AppointmentID: req.AppointmentID,
		Vitals:        req.Vitals,
		Symptoms:      req.Symptoms,
		Notes:         req.Notes,
		CreatedBy:     doctorID,
	}
	if err := s.records.UpsertByAppointment(ctx, record); err != nil {
		return fmt.Errorf("failed to save medical record: %w", err)
	}

	if req.ICD10CodeID <= 0 {
		return nil
	}

	diagnoses, err := s.diagnoses.ListByRecord(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load diagnoses: %w", err)
	}

	if len(diagnoses) == 0 {
		diagnosis := &model.Diagnosis{
			RecordID:    record.ID,
			ICD10CodeID: req.ICD10CodeID,
			Date:        time.Now(),
			CreatedBy:   doctorID,
		}
		if err := s.diagnoses.Create(ctx, diagnosis); err != nil {
			return fmt.Errorf("failed to create diagnosis: %w", err)
		}
		return nil
	}

	diagnosis := diagnoses[0]
	diagnosis.ICD10CodeID = req.ICD10CodeID
	diagnosis.Date = time.Now()
	if err := s.diagnoses.Update(ctx, diagnosis); err != nil {
		return fmt.Errorf("failed to update diagnosis: %w", err)
	}
	return nil
}

// ConsultationData returns the editable consultation view. "No consultation
// yet" is a legitimate state, not an error.
func (s *Service) ConsultationData(ctx context.Context, appointmentID int64) (*model.ConsultationData, error) {
	data := &model.ConsultationData{AppointmentID: appointmentID}

	record, err := s.records.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to load medical record: %w", err)
	}

	data.Vitals = &record.Vitals
	data.Symptoms = &record.Symptoms
	data.Notes = &record.Notes

	diagnoses, err := s.diagnoses.ListByRecord(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagnoses: %w", err)
	}
	if len(diagnoses) == 0 {
		return data, nil
	}

	primary := diagnoses[0]
	data.ICD10CodeID = &primary.ICD10CodeID
	if code, err := s.icd10.Get(ctx, primary.ICD10CodeID); err == nil {
		data.ICD10Code = &code.Code
		data.ICD10Description = &code.Description
	}
	return data, nil
}

// SearchICD10 does a cached, case-insensitive substring search over code
// and description. An empty term returns an empty list.
func (s *Service) SearchICD10(ctx context.Context, term string) ([]*model.ICD10Code, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.ICD10Code{}, nil
	}

	key := strings.ToLower(term)
	if cached, ok := s.searchCache.Get(key); ok {
		return cached.([]*model.ICD10Code), nil
	}

	codes, err := s.icd10.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search ICD-10 codes: %w", err)
	}
	s.searchCache.Set(key, codes, cache.DefaultExpiration)
	return codes, nil
}

// ageAt is whole years between birth and now, floored.
func ageAt(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
