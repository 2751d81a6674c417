package model

import (
	"time"
)

type Patient struct {
	ID          int64     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	FullName    string    `db:"full_name" json:"full_name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender      string    `db:"gender" json:"gender"`
	Address     string    `db:"address" json:"address"`
	Phone       string    `db:"phone" json:"phone"`
	Email       *string   `db:"email" json:"email,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	FullName    string    `json:"full_name" binding:"required"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender" binding:"required,oneof=Male Female Other"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone" binding:"required,phone"`
	Email       string    `json:"email" binding:"omitempty,email"`
}

type UpdatePatientRequest struct {
	FullName    string    `json:"full_name" binding:"required"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender" binding:"required,oneof=Male Female Other"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone" binding:"required,phone"`
	Email       string    `json:"email" binding:"omitempty,email"`
}
