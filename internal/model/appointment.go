package model

import (
	"time"
)

type Appointment struct {
	ID             int64     `db:"id" json:"id"`
	DateTime       time.Time `db:"date_time" json:"date_time"`
	Status         string    `db:"status" json:"status"`
	PatientID      int64     `db:"patient_id" json:"patient_id"`
	DoctorID       int64     `db:"doctor_id" json:"doctor_id"`
	ReceptionistID int64     `db:"receptionist_id" json:"receptionist_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	DoctorID  int64     `json:"doctor_id" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentView is a queue/schedule entry joined with patient and doctor
// names. Status carries either the persisted value or, for live-queue
// entries, the remapped display label.
type AppointmentView struct {
	ID          int64     `json:"id"`
	DateTime    time.Time `json:"date_time"`
	Status      string    `json:"status"`
	PatientID   int64     `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	PatientCode string    `json:"patient_code,omitempty"`
	DoctorID    int64     `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
}

// AppointmentDetails is the fully joined single-appointment view returned
// to the front desk after a lookup or a status transition.
type AppointmentDetails struct {
	ID             int64     `json:"id"`
	DateTime       time.Time `json:"date_time"`
	Status         string    `json:"status"`
	PatientID      int64     `json:"patient_id"`
	PatientCode    string    `json:"patient_code"`
	PatientName    string    `json:"patient_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	DoctorID       int64     `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	ReceptionistID int64     `json:"receptionist_id"`
}

// StatusChangedEvent is published on every visit state transition.
type StatusChangedEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedBy     int64     `json:"changed_by"`
	ChangedAt     time.Time `json:"changed_at"`
}
