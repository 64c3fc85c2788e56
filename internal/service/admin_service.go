package service

import (
	"context"
	"fmt"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/repository"
	"github.com/inotebook/backend/internal/utils"
)

// AdminService handles the admin credential namespace. It mirrors the
// user lifecycle but operates on its own store and its own token
// service, so admin and user sessions never mix.
type AdminService struct {
	adminRepo repository.AdminRepository
	tokens    *auth.TokenService
	hasher    *auth.PasswordHasher
}

// NewAdminService creates a new AdminService
func NewAdminService(
	adminRepo repository.AdminRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		tokens:    tokens,
		hasher:    hasher,
	}
}

// Register creates a new admin account. Duplicate emails conflict.
func (s *AdminService) Register(ctx context.Context, req *models.AdminRegisterRequest) (*models.Admin, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	utils.LogAuth("admin_register", admin.ID, admin.Email, true, "")

	return admin.Sanitize(), nil
}

// Login verifies admin credentials and issues an admin session token.
// Every failure mode reports the same invalid-credentials error.
func (s *AdminService) Login(ctx context.Context, req *models.AdminLoginRequest) (*models.Admin, string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("admin_login", 0, req.Email, false, "unknown email")
			return nil, "", utils.NewInvalidCredentialsError()
		}
		return nil, "", fmt.Errorf("failed to get admin: %w", err)
	}

	if req.Password == "" || !s.hasher.Verify(req.Password, admin.PasswordHash) {
		utils.LogAuth("admin_login", admin.ID, admin.Email, false, "password mismatch")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	utils.LogAuth("admin_login", admin.ID, admin.Email, true, "")

	return admin.Sanitize(), token, nil
}

// VerifyAccount confirms the admin behind a session still exists.
// Session tokens are stateless, so without this check a deleted admin
// account would keep its access until the token expired.
func (s *AdminService) VerifyAccount(ctx context.Context, adminID int64) error {
	if _, err := s.adminRepo.GetByID(ctx, adminID); err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("admin_verify", adminID, "", false, "account missing")
			return utils.NewUnauthorizedError("")
		}
		return fmt.Errorf("failed to verify admin: %w", err)
	}
	return nil
}
