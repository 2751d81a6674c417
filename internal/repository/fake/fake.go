// Package fake holds in-memory repository implementations for service
// tests. Misses wrap sql.ErrNoRows exactly like the postgres package so
// the services' error translation is exercised for real.
package fake

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

type AppointmentRepo struct {
	Appointments map[int64]*model.Appointment
	nextID       int64
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{Appointments: make(map[int64]*model.Appointment)}
}

// Add seeds an appointment with an explicit id.
func (r *AppointmentRepo) Add(a *model.Appointment) {
	r.Appointments[a.ID] = a
	if a.ID > r.nextID {
		r.nextID = a.ID
	}
}

func (r *AppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.Appointments[a.ID] = a
	return nil
}

func (r *AppointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := r.Appointments[id]
	if !ok {
		return nil, fmt.Errorf("failed to get appointment: %w", sql.ErrNoRows)
	}
	return a, nil
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	a, ok := r.Appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d not found", id)
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (r *AppointmentRepo) FindByDateRange(_ context.Context, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.Appointments {
		if !a.DateTime.Before(start) && !a.DateTime.After(end) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (r *AppointmentRepo) FindByDoctorAndDateRange(_ context.Context, doctorID int64, start, end time.Time) ([]*model.Appointment, error) {
	all, _ := r.FindByDateRange(context.Background(), start, end)
	var out []*model.Appointment
	for _, a := range all {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentRepo) CountByDateRange(_ context.Context, start, end time.Time) (int64, error) {
	var count int64
	for _, a := range r.Appointments {
		if !a.DateTime.Before(start) && a.DateTime.Before(end) {
			count++
		}
	}
	return count, nil
}

type PatientRepo struct {
	Patients map[int64]*model.Patient
	nextID   int64
}

func NewPatientRepo() *PatientRepo {
	return &PatientRepo{Patients: make(map[int64]*model.Patient)}
}

func (r *PatientRepo) Add(p *model.Patient) {
	r.Patients[p.ID] = p
	if p.ID > r.nextID {
		r.nextID = p.ID
	}
}

func (r *PatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.Patients[p.ID] = p
	return nil
}

func (r *PatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := r.Patients[id]
	if !ok {
		return nil, fmt.Errorf("failed to get patient: %w", sql.ErrNoRows)
	}
	return p, nil
}

func (r *PatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := r.Patients[p.ID]; !ok {
		return fmt.Errorf("patient %d not found", p.ID)
	}
	p.UpdatedAt = time.Now()
	r.Patients[p.ID] = p
	return nil
}

func (r *PatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.Patients))
	for _, p := range r.Patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *PatientRepo) FindByPhone(_ context.Context, phone string) (*model.Patient, error) {
	for _, p := range r.Patients {
		if p.Phone == phone {
			return p, nil
		}
	}
	return nil, fmt.Errorf("failed to find patient by phone: %w", sql.ErrNoRows)
}

func (r *PatientRepo) Search(_ context.Context, term string) ([]*model.Patient, error) {
	return r.List(context.Background())
}

func (r *PatientRepo) SearchByName(_ context.Context, name string) ([]*model.Patient, error) {
	return r.List(context.Background())
}

func (r *PatientRepo) CountDistinctByAppointmentRange(_ context.Context, start, end time.Time) (int64, error) {
	return 0, nil
}

func (r *PatientRepo) CountNewByAppointmentRange(_ context.Context, start, end time.Time) (int64, error) {
	return 0, nil
}

type UserRepo struct {
	Users  map[int64]*model.User
	nextID int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Users: make(map[int64]*model.User)}
}

func (r *UserRepo) Add(u *model.User) {
	r.Users[u.ID] = u
	if u.ID > r.nextID {
		r.nextID = u.ID
	}
}

func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.Users[u.ID] = u
	return nil
}

func (r *UserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.Users[id]
	if !ok {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("failed to get user by username: %w", sql.ErrNoRows)
}

func (r *UserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.Users[u.ID]; !ok {
		return fmt.Errorf("user %d not found", u.ID)
	}
	u.UpdatedAt = time.Now()
	r.Users[u.ID] = u
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(r.Users))
	for _, u := range r.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepo) ListByRole(_ context.Context, role int) ([]*model.User, error) {
	all, _ := r.List(context.Background())
	var out []*model.User
	for _, u := range all {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.Users)), nil
}

func (r *UserRepo) CountByRole(_ context.Context, role int) (int64, error) {
	var count int64
	for _, u := range r.Users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *UserRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, u := range r.Users {
		if u.Status == status {
			count++
		}
	}
	return count, nil
}

type MedicalRecordRepo struct {
	Records map[int64]*model.MedicalRecord
	// PatientByAppointment lets ListByPatient resolve the join without a
	// second repo.
	PatientByAppointment map[int64]int64
	nextID               int64
}

func NewMedicalRecordRepo() *MedicalRecordRepo {
	return &MedicalRecordRepo{
		Records:              make(map[int64]*model.MedicalRecord),
		PatientByAppointment: make(map[int64]int64),
	}
}

func (r *MedicalRecordRepo) Add(rec *model.MedicalRecord, patientID int64) {
	r.Records[rec.ID] = rec
	r.PatientByAppointment[rec.AppointmentID] = patientID
	if rec.ID > r.nextID {
		r.nextID = rec.ID
	}
}

func (r *MedicalRecordRepo) Get(_ context.Context, id int64) (*model.MedicalRecord, error) {
	rec, ok := r.Records[id]
	if !ok {
		return nil, fmt.Errorf("failed to get medical record: %w", sql.ErrNoRows)
	}
	return rec, nil
}

func (r *MedicalRecordRepo) GetByAppointment(_ context.Context, appointmentID int64) (*model.MedicalRecord, error) {
	for _, rec := range r.Records {
		if rec.AppointmentID == appointmentID {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("failed to get medical record by appointment: %w", sql.ErrNoRows)
}

// ListByPatient returns records in map order, deliberately unsorted.
func (r *MedicalRecordRepo) ListByPatient(_ context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, rec := range r.Records {
		if r.PatientByAppointment[rec.AppointmentID] == patientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MedicalRecordRepo) UpsertByAppointment(_ context.Context, record *model.MedicalRecord) error {
	if existing, err := r.GetByAppointment(context.Background(), record.AppointmentID); err == nil {
		existing.Vitals = record.Vitals
		existing.Symptoms = record.Symptoms
		existing.Notes = record.Notes
		modifiedBy := record.CreatedBy
		existing.ModifiedBy = &modifiedBy
		existing.UpdatedAt = time.Now()
		record.ID = existing.ID
		record.CreatedBy = existing.CreatedBy
		return nil
	}
	r.nextID++
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	r.Records[record.ID] = record
	return nil
}

type DiagnosisRepo struct {
	Diagnoses map[int64]*model.Diagnosis
	nextID    int64
}

func NewDiagnosisRepo() *DiagnosisRepo {
	return &DiagnosisRepo{Diagnoses: make(map[int64]*model.Diagnosis)}
}

func (r *DiagnosisRepo) Add(d *model.Diagnosis) {
	r.Diagnoses[d.ID] = d
	if d.ID > r.nextID {
		r.nextID = d.ID
	}
}

func (r *DiagnosisRepo) ListByRecord(_ context.Context, recordID int64) ([]*model.Diagnosis, error) {
	var out []*model.Diagnosis
	for _, d := range r.Diagnoses {
		if d.RecordID == recordID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DiagnosisRepo) Create(_ context.Context, d *model.Diagnosis) error {
	r.nextID++
	d.ID = r.nextID
	r.Diagnoses[d.ID] = d
	return nil
}

func (r *DiagnosisRepo) Update(_ context.Context, d *model.Diagnosis) error {
	if _, ok := r.Diagnoses[d.ID]; !ok {
		return fmt.Errorf("diagnosis %d not found", d.ID)
	}
	r.Diagnoses[d.ID] = d
	return nil
}

type ICD10Repo struct {
	Codes map[int64]*model.ICD10Code
	// SearchCalls counts repo hits so cache tests can assert on them.
	SearchCalls int
}

func NewICD10Repo() *ICD10Repo {
	return &ICD10Repo{Codes: make(map[int64]*model.ICD10Code)}
}

func (r *ICD10Repo) Add(c *model.ICD10Code) {
	r.Codes[c.ID] = c
}

func (r *ICD10Repo) Get(_ context.Context, id int64) (*model.ICD10Code, error) {
	c, ok := r.Codes[id]
	if !ok {
		return nil, fmt.Errorf("failed to get ICD-10 code: %w", sql.ErrNoRows)
	}
	return c, nil
}

func (r *ICD10Repo) Search(_ context.Context, term string) ([]*model.ICD10Code, error) {
	r.SearchCalls++
	out := make([]*model.ICD10Code, 0, len(r.Codes))
	for _, c := range r.Codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type PrescriptionRepo struct {
	Prescriptions map[int64]*model.Prescription
	Items         map[int64][]*model.PrescriptionItem
	SaveCalls     int
	nextID        int64
	nextItemID    int64
}

func NewPrescriptionRepo() *PrescriptionRepo {
	return &PrescriptionRepo{
		Prescriptions: make(map[int64]*model.Prescription),
		Items:         make(map[int64][]*model.PrescriptionItem),
	}
}

func (r *PrescriptionRepo) GetByRecord(_ context.Context, recordID int64) (*model.Prescription, error) {
	for _, p := range r.Prescriptions {
		if p.RecordID == recordID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("failed to get prescription by record: %w", sql.ErrNoRows)
}

func (r *PrescriptionRepo) ListItems(_ context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	return r.Items[prescriptionID], nil
}

func (r *PrescriptionRepo) SaveWithItems(_ context.Context, prescription *model.Prescription, items []*model.PrescriptionItem) error {
	r.SaveCalls++
	prescription.Date = time.Now()
	if existing, err := r.GetByRecord(context.Background(), prescription.RecordID); err == nil {
		existing.Date = prescription.Date
		existing.Notes = prescription.Notes
		existing.AIAlerts = prescription.AIAlerts
		prescription.ID = existing.ID
		prescription.Code = existing.Code
		prescription.CreatedBy = existing.CreatedBy
	} else {
		r.nextID++
		prescription.ID = r.nextID
		r.Prescriptions[prescription.ID] = prescription
	}
	replaced := make([]*model.PrescriptionItem, 0, len(items))
	for _, item := range items {
		r.nextItemID++
		item.ID = r.nextItemID
		item.PrescriptionID = prescription.ID
		replaced = append(replaced, item)
	}
	r.Items[prescription.ID] = replaced
	return nil
}

type MedicineRepo struct {
	Medicines map[int64]*model.Medicine
	Groups    map[int64]*model.MedicineGroup
}

func NewMedicineRepo() *MedicineRepo {
	return &MedicineRepo{
		Medicines: make(map[int64]*model.Medicine),
		Groups:    make(map[int64]*model.MedicineGroup),
	}
}

func (r *MedicineRepo) Add(m *model.Medicine) {
	r.Medicines[m.ID] = m
}

func (r *MedicineRepo) AddGroup(g *model.MedicineGroup) {
	r.Groups[g.ID] = g
}

func (r *MedicineRepo) Get(_ context.Context, id int64) (*model.Medicine, error) {
	m, ok := r.Medicines[id]
	if !ok {
		return nil, fmt.Errorf("failed to get medicine: %w", sql.ErrNoRows)
	}
	return m, nil
}

func (r *MedicineRepo) List(_ context.Context) ([]*model.Medicine, error) {
	out := make([]*model.Medicine, 0, len(r.Medicines))
	for _, m := range r.Medicines {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MedicineRepo) Search(_ context.Context, term string) ([]*model.Medicine, error) {
	return r.List(context.Background())
}

func (r *MedicineRepo) GetGroup(_ context.Context, id int64) (*model.MedicineGroup, error) {
	g, ok := r.Groups[id]
	if !ok {
		return nil, fmt.Errorf("failed to get medicine group: %w", sql.ErrNoRows)
	}
	return g, nil
}

type ServiceRepo struct {
	Services []*model.ClinicService
	Types    []*model.ServiceType
}

func (r *ServiceRepo) List(_ context.Context) ([]*model.ClinicService, error) {
	return r.Services, nil
}

func (r *ServiceRepo) ListTypes(_ context.Context) ([]*model.ServiceType, error) {
	return r.Types, nil
}

type BillRepo struct {
	Revenue float64
	Err     error
}

func (r *BillRepo) PaidRevenueByDateRange(_ context.Context, start, end time.Time) (float64, error) {
	return r.Revenue, r.Err
}

type Broker struct {
	Published []PublishedMessage
	Err       error
}

type PublishedMessage struct {
	Channel string
	Message interface{}
}

func (b *Broker) Publish(_ context.Context, channel string, message interface{}) error {
	if b.Err != nil {
		return b.Err
	}
	b.Published = append(b.Published, PublishedMessage{Channel: channel, Message: message})
	return nil
}

func (b *Broker) Subscribe(_ context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (b *Broker) Close() error { return nil }
