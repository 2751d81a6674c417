package model

import (
	"time"
)

// Prescription is tied 1:1 to a medical record (unique record_id).
type Prescription struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Date      time.Time `db:"date" json:"date"`
	Notes     string    `db:"notes" json:"notes"`
	AIAlerts  string    `db:"ai_alerts" json:"ai_alerts"`
	RecordID  int64     `db:"record_id" json:"record_id"`
	CreatedBy int64     `db:"created_by" json:"created_by"`
}

type PrescriptionItem struct {
	ID             int64  `db:"id" json:"id"`
	PrescriptionID int64  `db:"prescription_id" json:"prescription_id"`
	MedicineID     int64  `db:"medicine_id" json:"medicine_id"`
	Quantity       int    `db:"quantity" json:"quantity"`
	Note           string `db:"note" json:"note"`
}

type SavePrescriptionRequest struct {
	AppointmentID int64                     `json:"appointment_id" binding:"required"`
	Notes         string                    `json:"notes"`
	AIAlerts      string                    `json:"ai_alerts"`
	Items         []PrescriptionItemRequest `json:"items" binding:"dive"`
}

type PrescriptionItemRequest struct {
	MedicineID int64  `json:"medicine_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Note       string `json:"note"`
}

// PrescriptionView is the prescription header plus its item list joined
// with medicine details. A zero ID means no prescription exists yet.
type PrescriptionView struct {
	ID       int64                  `json:"id"`
	Code     *string                `json:"code"`
	Date     *time.Time             `json:"date"`
	Notes    *string                `json:"notes"`
	AIAlerts *string                `json:"ai_alerts"`
	RecordID int64                  `json:"record_id"`
	Items    []PrescriptionItemView `json:"items"`
}

type PrescriptionItemView struct {
	ID           int64  `json:"id"`
	MedicineID   int64  `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	MedicineCode string `json:"medicine_code"`
	Strength     string `json:"strength"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
}
