package model

import (
	"time"
)

// MedicalRecord is the consultation record for one appointment (1:1,
// enforced by a unique constraint on appointment_id).
type MedicalRecord struct {
	ID            int64     `db:"id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	Vitals        string    `db:"vitals" json:"vitals"`
	Symptoms      string    `db:"symptoms" json:"symptoms"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedBy     int64     `db:"created_by" json:"created_by"`
	ModifiedBy    *int64    `db:"modified_by" json:"modified_by,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Diagnosis struct {
	ID          int64     `db:"id" json:"id"`
	RecordID    int64     `db:"record_id" json:"record_id"`
	ICD10CodeID int64     `db:"icd10_code_id" json:"icd10_code_id"`
	Description *string   `db:"description" json:"description,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
}

type ICD10Code struct {
	ID          int64  `db:"id" json:"id"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}

type SaveConsultationRequest struct {
	AppointmentID int64  `json:"appointment_id" binding:"required"`
	Vitals        string `json:"vitals"`
	Symptoms      string `json:"symptoms"`
	Notes         string `json:"notes"`
	ICD10CodeID   int64  `json:"icd10_code_id"`
}

// ConsultationData is the editable consultation view for one appointment.
// Everything but the appointment id is null until the first save.
type ConsultationData struct {
	AppointmentID    int64   `json:"appointment_id"`
	Vitals           *string `json:"vitals"`
	Symptoms         *string `json:"symptoms"`
	Notes            *string `json:"notes"`
	ICD10CodeID      *int64  `json:"icd10_code_id"`
	ICD10Code        *string `json:"icd10_code"`
	ICD10Description *string `json:"icd10_description"`
}
