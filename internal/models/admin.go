package models

import (
	"time"
)

// Admin represents an administrative account. Admins live in their own
// table with their own signing secret and cookie, structurally parallel
// to users but never interchangeable with them.
type Admin struct {
	ID           int64     `json:"id" db:"admin_id"`
	Email        string    `json:"email" db:"email" validate:"required,email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the Admin model.
func (a *Admin) TableName() string {
	return "admins"
}

// Sanitize removes credential material from the Admin object before it
// is sent to clients.
func (a *Admin) Sanitize() *Admin {
	sanitized := *a
	sanitized.PasswordHash = ""
	return &sanitized
}

// AdminRegisterRequest represents the data required to create an admin
// account.
type AdminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AdminLoginRequest represents admin login credentials. Like user login,
// the password is validated in the service layer so every failure mode
// reports the same invalid-credentials error.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}
