package prescription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
)

type Service struct {
	appointments  repository.AppointmentRepository
	records       repository.MedicalRecordRepository
	prescriptions repository.PrescriptionRepository
	medicines     repository.MedicineRepository
}

func NewService(
	appointments repository.AppointmentRepository,
	records repository.MedicalRecordRepository,
	prescriptions repository.PrescriptionRepository,
	medicines repository.MedicineRepository,
) *Service {
	return &Service{
		appointments:  appointments,
		records:       records,
		prescriptions: prescriptions,
		medicines:     medicines,
	}
}

// Get returns the prescription for an appointment. No consultation or no
// prescription yet are both rendered as an empty shell (zero ID, no items)
// so the consultation screen has one shape to bind to.
func (s *Service) Get(ctx context.Context, appointmentID int64) (*model.PrescriptionView, error) {
	if _, err := s.appointments.Get(ctx, appointmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("appointment %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	record, err := s.records.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.PrescriptionView{Items: []model.PrescriptionItemView{}}, nil
		}
		return nil, fmt.Errorf("failed to load medical record: %w", err)
	}

	prescription, err := s.prescriptions.GetByRecord(ctx, record.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.PrescriptionView{
				RecordID: record.ID,
				Items:    []model.PrescriptionItemView{},
			}, nil
		}
		return nil, fmt.Errorf("failed to load prescription: %w", err)
	}

	items, err := s.prescriptions.ListItems(ctx, prescription.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prescription items: %w", err)
	}

	itemViews := make([]model.PrescriptionItemView, 0, len(items))
	for _, item := range items {
		medicine, err := s.medicines.Get(ctx, item.MedicineID)
		if err != nil {
			return nil, apperrors.ReferentialIntegrity(
				fmt.Sprintf("prescription item %d references missing medicine %d", item.ID, item.MedicineID), err)
		}
		itemViews = append(itemViews, model.PrescriptionItemView{
			ID:           item.ID,
			MedicineID:   medicine.ID,
			MedicineName: medicine.Name,
			MedicineCode: medicine.Code,
			Strength:     medicine.Strength,
			Quantity:     item.Quantity,
			Note:         item.Note,
		})
	}

	return &model.PrescriptionView{
		ID:       prescription.ID,
		Code:     &prescription.Code,
		Date:     &prescription.Date,
		Notes:    &prescription.Notes,
		AIAlerts: &prescription.AIAlerts,
		RecordID: prescription.RecordID,
		Items:    itemViews,
	}, nil
}

// Save upserts the appointment's prescription and replaces its item set.
// Every referenced medicine is checked before anything is written, so a
// bad item id fails the whole save instead of leaving a partial list.
func (s *Service) Save(ctx context.Context, doctorID int64, req *model.SavePrescriptionRequest) (*model.PrescriptionView, error) {
	record, err := s.records.GetByAppointment(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("no medical record for appointment %d; save the consultation first", req.AppointmentID)
		}
		return nil, fmt.Errorf("failed to load medical record: %w", err)
	}

	items := make([]*model.PrescriptionItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if _, err := s.medicines.Get(ctx, itemReq.MedicineID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFoundf("medicine %d not found", itemReq.MedicineID)
			}
			return nil, fmt.Errorf("failed to load medicine: %w", err)
		}
		items = append(items, &model.PrescriptionItem{
			MedicineID: itemReq.MedicineID,
			Quantity:   itemReq.Quantity,
			Note:       itemReq.Note,
		})
	}

	prescription := &model.Prescription{
		Code:      newCode(),
		Notes:     req.Notes,
		AIAlerts:  req.AIAlerts,
		RecordID:  record.ID,
		CreatedBy: doctorID,
	}
	if err := s.prescriptions.SaveWithItems(ctx, prescription, items); err != nil {
		return nil, fmt.Errorf("failed to save prescription: %w", err)
	}

	return s.Get(ctx, req.AppointmentID)
}

// SearchMedicines lists or filters the medicine pick list joined with
// group names. An empty term lists everything.
func (s *Service) SearchMedicines(ctx context.Context, term string) ([]*model.MedicineView, error) {
	term = strings.TrimSpace(term)

	var (
		medicines []*model.Medicine
		err       error
	)
	if term == "" {
		medicines, err = s.medicines.List(ctx)
	} else {
		medicines, err = s.medicines.Search(ctx, term)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}

	groupNames := make(map[int64]string)
	views := make([]*model.MedicineView, 0, len(medicines))
	for _, medicine := range medicines {
		name, ok := groupNames[medicine.GroupID]
		if !ok {
			name = "Unknown"
			if group, err := s.medicines.GetGroup(ctx, medicine.GroupID); err == nil {
				name = group.Name
			}
			groupNames[medicine.GroupID] = name
		}
		views = append(views, &model.MedicineView{
			ID:        medicine.ID,
			Code:      medicine.Code,
			Name:      medicine.Name,
			GroupName: name,
			GroupID:   medicine.GroupID,
			Strength:  medicine.Strength,
			Unit:      medicine.Unit,
			Price:     medicine.Price,
			Stock:     medicine.Stock,
			Status:    medicine.Status,
		})
	}
	return views, nil
}

// newCode issues a short human-readable prescription code. Uniqueness rides
// on the UUID fragment; the code is a label, not a key.
func newCode() string {
	fragment := strings.ToUpper(uuid.NewString()[:8])
	return "P-" + fragment
}
