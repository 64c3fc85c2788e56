// Package models defines the persistent entities and the request and
// response structures of the API.
package models

import (
	"database/sql"
	"time"
)

// User represents a registered account of the note-taking service.
// The reset token columns are both NULL except during an active
// password-reset window; they are only ever written together.
type User struct {
	ID                int64          `json:"id" db:"user_id"`
	FullName          string         `json:"fullname" db:"fullname" validate:"required,min=2,max=100"`
	Email             string         `json:"email" db:"email" validate:"required,email"`
	PasswordHash      string         `json:"-" db:"password_hash"`
	ResetTokenHash    sql.NullString `json:"-" db:"reset_token_hash"`
	ResetTokenExpires sql.NullTime   `json:"-" db:"reset_token_expires"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User instance with the given name and email.
// The password hash is populated during signup.
func NewUser(fullName, email string) *User {
	now := time.Now()
	return &User{
		FullName:  fullName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes credential material from the User object before it
// is sent to clients.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.ResetTokenHash = sql.NullString{}
	sanitized.ResetTokenExpires = sql.NullTime{}
	return &sanitized
}

// SignupRequest represents the data required to create an account.
type SignupRequest struct {
	FullName string `json:"fullname" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents login credentials. The password carries no
// required tag: an absent password must reach the service layer and
// fail there as invalid credentials, indistinguishable from a wrong
// password or an unknown email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts the password-reset workflow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a reset token. The token itself travels
// in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}
