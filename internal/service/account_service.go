package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/repository"
	"github.com/inotebook/backend/internal/utils"
)

// AccountService orchestrates the credential and session lifecycle of
// user accounts: signup, login, password reset, and account deletion.
type AccountService struct {
	userRepo  repository.UserRepository
	noteRepo  repository.NoteRepository
	tokens    *auth.TokenService
	hasher    *auth.PasswordHasher
	mailer    Mailer
	clientURL string
	resetTTL  time.Duration
}

// NewAccountService creates a new AccountService
func NewAccountService(
	userRepo repository.UserRepository,
	noteRepo repository.NoteRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	mailer Mailer,
	clientURL string,
	resetTTL time.Duration,
) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		tokens:    tokens,
		hasher:    hasher,
		mailer:    mailer,
		clientURL: clientURL,
		resetTTL:  resetTTL,
	}
}

// Signup creates a new account and issues a session token for it, so a
// fresh signup is immediately logged in. A taken email answers 400, not
// 409: the user namespace treats it as a plain bad request.
func (s *AccountService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(req.FullName, req.Email)
	user.PasswordHash = passwordHash

	if err := s.userRepo.Create(ctx, user); err != nil {
		if utils.IsDuplicateError(err) {
			utils.LogAuth("signup", 0, req.Email, false, "email taken")
			return nil, "", utils.NewBadRequestError("User already exists")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	utils.LogAuth("signup", user.ID, user.Email, true, "")

	return user.Sanitize(), token, nil
}

// Login verifies credentials and issues a session token. An unknown
// email, a wrong password, and an absent password all fail with the
// same invalid-credentials error.
func (s *AccountService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login", 0, req.Email, false, "unknown email")
			return nil, "", utils.NewInvalidCredentialsError()
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if req.Password == "" || !s.hasher.Verify(req.Password, user.PasswordHash) {
		utils.LogAuth("login", user.ID, user.Email, false, "password mismatch")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	utils.LogAuth("login", user.ID, user.Email, true, "")

	return user.Sanitize(), token, nil
}

// RequestPasswordReset issues a reset token for the account with the
// given email and mails the reset link. The caller sees a not-found
// error for unknown emails. Requesting again before the previous token
// expires overwrites it; only the newest token redeems.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	cleartext, hash, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(s.resetTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, cleartext)
	if err := s.mailer.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		return utils.NewInternalServerError(err)
	}

	utils.LogAuth("password_reset_requested", user.ID, user.Email, true, "")

	return nil
}

// ResetPassword redeems a reset token and installs the new password.
// The bcrypt hash is computed before the redemption transaction so the
// slow work happens outside the row lock. Existing sessions remain
// valid; only the credential changes.
func (s *AccountService) ResetPassword(ctx context.Context, cleartext, newPassword string) error {
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tokenHash := auth.HashResetToken(cleartext)

	userID, err := s.userRepo.RedeemResetToken(ctx, tokenHash, newHash)
	if err != nil {
		return err
	}

	utils.LogAuth("password_reset", userID, "", true, "")

	return nil
}

// DeleteAccount removes the account and all its notes in one
// transaction. Deletion is irreversible. The account is looked up first
// so a missing user fails before the transaction opens and the audit
// log records which email was removed.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteCascade(ctx, userID, s.noteRepo.DeleteAllForUserTx); err != nil {
		return err
	}

	utils.LogAuth("account_deleted", user.ID, user.Email, true, "")

	return nil
}
