package model

import (
	"time"
)

// EMR is the assembled, read-only longitudinal visit history for one
// patient, newest record first.
type EMR struct {
	PatientID    int64          `json:"patient_id"`
	PatientCode  string         `json:"patient_code"`
	FullName     string         `json:"full_name"`
	DateOfBirth  time.Time      `json:"date_of_birth"`
	Age          int            `json:"age"`
	Gender       string         `json:"gender"`
	VisitHistory []VisitHistory `json:"visit_history"`
}

// VisitHistory is one past visit. Diagnosis fields fall back to the "N/A"
// sentinel rather than null.
type VisitHistory struct {
	AppointmentID    int64     `json:"appointment_id"`
	DateTime         time.Time `json:"date_time"`
	Symptoms         string    `json:"symptoms"`
	PrimaryDiagnosis string    `json:"primary_diagnosis"`
	DiagnosisCode    string    `json:"diagnosis_code"`
	DoctorName       string    `json:"doctor_name"`
}
