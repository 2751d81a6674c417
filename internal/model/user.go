package model

import (
	"time"
)

// Staff roles. Role IDs predate this service and are shared with the
// front-desk UI, so they stay numeric in the store.
const (
	RoleAdmin        = 1
	RoleDoctor       = 2
	RoleReceptionist = 3
)

const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         int       `db:"role" json:"role"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName is the staff name shown in views: full name if present,
// username otherwise.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) RoleName() string {
	return RoleName(u.Role)
}

func RoleName(role int) string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleDoctor:
		return "Doctor"
	case RoleReceptionist:
		return "Receptionist"
	default:
		return "Unknown"
	}
}

type StaffView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Username string `json:"username"`
}

func NewStaffView(u *User) *StaffView {
	return &StaffView{
		ID:       u.ID,
		Name:     u.DisplayName(),
		Email:    u.Email,
		Role:     u.RoleName(),
		Status:   u.Status,
		Username: u.Username,
	}
}

type CreateStaffRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	RoleID   int    `json:"role_id" binding:"required,oneof=1 2 3"`
}

type UpdateStaffRequest struct {
	FullName *string `json:"full_name"`
	RoleID   *int    `json:"role_id" binding:"omitempty,oneof=1 2 3"`
	Status   *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateStaffStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Inactive"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
