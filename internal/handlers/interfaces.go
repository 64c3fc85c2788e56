// Package handlers implements the HTTP endpoints of the API.
package handlers

import (
	"context"

	"github.com/inotebook/backend/internal/models"
)

// AccountManager defines the account operations used by AuthHandler.
// The interface exists so handler tests can mock the service layer.
type AccountManager interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, cleartext, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64) error
}

// NoteManager defines the note operations used by NoteHandler.
type NoteManager interface {
	Create(ctx context.Context, userID int64, req *models.NoteRequest) (*models.Note, error)
	List(ctx context.Context, userID int64) ([]*models.Note, error)
	Update(ctx context.Context, userID, noteID int64, req *models.NoteRequest) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID int64) error
}

// AdminManager defines the admin account operations used by AdminHandler.
type AdminManager interface {
	Register(ctx context.Context, req *models.AdminRegisterRequest) (*models.Admin, error)
	Login(ctx context.Context, req *models.AdminLoginRequest) (*models.Admin, string, error)
	VerifyAccount(ctx context.Context, adminID int64) error
}

// DashboardProvider defines the analytics operations used by AdminHandler.
type DashboardProvider interface {
	GetDashboardData(ctx context.Context) (*models.DashboardData, error)
}
