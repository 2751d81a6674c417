package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

type Service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{patients: patients}
}

// Create registers a patient. The phone number is the natural key the front
// desk deduplicates on, so a duplicate is rejected before anything is
// written.
func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	phone := strings.TrimSpace(req.Phone)

	existing, err := s.patients.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Validation(fmt.Sprintf("phone number %s is already registered to patient %s", phone, existing.Code))
	}

	patient := &model.Patient{
		Code:        newCode(time.Now()),
		FullName:    strings.TrimSpace(req.FullName),
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address:     req.Address,
		Phone:       phone,
	}
	if req.Email != "" {
		email := req.Email
		patient.Email = &email
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

// Update rewrites the patient's demographics. The code is immutable; the
// phone number may change but must stay unique across other patients.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("patient %d not found", id)
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != patient.Phone {
		existing, err := s.patients.FindByPhone(ctx, phone)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Validation(fmt.Sprintf("phone number %s is already registered to patient %s", phone, existing.Code))
		}
	}

	patient.FullName = strings.TrimSpace(req.FullName)
	patient.DateOfBirth = req.DateOfBirth
	patient.Gender = req.Gender
	patient.Address = req.Address
	patient.Phone = phone
	patient.Email = nil
	if req.Email != "" {
		email := req.Email
		patient.Email = &email
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("patient %d not found", id)
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Search matches name, code or phone. An empty term lists everyone.
func (s *Service) Search(ctx context.Context, term string) ([]*model.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	patients, err := s.patients.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

// newCode issues a registration code like P202608281234: registration date
// plus a 4-digit disambiguator.
func newCode(now time.Time) string {
	return fmt.Sprintf("P%s%04d", now.Format("20060102"), rand.Intn(10000))
}
