package model

import (
	"time"
)

const (
	PaymentStatusPaid   = "Paid"
	PaymentStatusUnpaid = "Unpaid"
)

type Bill struct {
	ID            int64     `db:"id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	DateIssued    time.Time `db:"date_issued" json:"date_issued"`
}
