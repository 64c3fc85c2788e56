package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/constants"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/repository"
	"github.com/inotebook/backend/internal/service"
	"github.com/inotebook/backend/internal/utils"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expires time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string) (int64, error) {
	args := m.Called(ctx, tokenHash, newPasswordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id int64, purgeNotes repository.NotesPurger) error {
	args := m.Called(ctx, id, mock.Anything)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of repository.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	if args.Error(0) == nil {
		note.ID = 1
	}
	return args.Error(0)
}

func (m *MockNoteRepository) GetAllForUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, noteID, userID int64) error {
	args := m.Called(ctx, noteID, userID)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

// MockMailer is a mock implementation of service.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordResetEmail(to, resetURL string) error {
	args := m.Called(to, resetURL)
	return args.Error(0)
}

func newAccountServiceTest(t *testing.T) (*service.AccountService, *MockUserRepository, *MockNoteRepository, *MockMailer, *auth.PasswordHasher) {
	t.Helper()

	userRepo := new(MockUserRepository)
	noteRepo := new(MockNoteRepository)
	mailer := new(MockMailer)
	tokens := auth.NewTokenService("svc-secret", constants.SessionIssuer, constants.UserTokenAudience, time.Hour)
	hasher := auth.NewPasswordHasher(4) // minimum cost keeps the test fast

	svc := service.NewAccountService(
		userRepo, noteRepo, tokens, hasher, mailer,
		"http://localhost:5173", 15*time.Minute,
	)
	return svc, userRepo, noteRepo, mailer, hasher
}

func TestAccountService_Signup(t *testing.T) {
	svc, userRepo, _, _, hasher := newAccountServiceTest(t)

	var storedHash string
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		storedHash = u.PasswordHash
		return u.Email == "new@example.com" && u.FullName == "New User"
	})).Return(nil)

	user, token, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "New User",
		Email:    "new@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "new@example.com", user.Email)
	// The stored hash verifies the password, and the response never carries it
	assert.True(t, hasher.Verify("password123", storedHash))
	assert.Empty(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	svc, userRepo, _, _, _ := newAccountServiceTest(t)

	userRepo.On("Create", mock.Anything, mock.Anything).
		Return(utils.NewDuplicateError("User", "email", "taken@example.com"))

	_, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "New User",
		Email:    "taken@example.com",
		Password: "password123",
	})

	// A taken email answers 400 "User already exists"
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusCode(err))
	assert.Contains(t, err.Error(), "User already exists")
	userRepo.AssertExpectations(t)
}

func TestAccountService_Login(t *testing.T) {
	svc, userRepo, _, _, hasher := newAccountServiceTest(t)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	user, token, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), user.ID)
	assert.Empty(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	svc, userRepo, _, _, _ := newAccountServiceTest(t)

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, utils.NewNotFoundError("User", "email=nobody@example.com"))

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	userRepo.AssertExpectations(t)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _, _, hasher := newAccountServiceTest(t)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	_, _, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	userRepo.AssertExpectations(t)
}

func TestAccountService_Login_EmptyPassword(t *testing.T) {
	svc, userRepo, _, _, hasher := newAccountServiceTest(t)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	// An absent password must be indistinguishable from a wrong one
	_, _, err = svc.Login(context.Background(), &models.LoginRequest{
		Email: "user@example.com",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	userRepo.AssertExpectations(t)
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	svc, userRepo, _, mailer, _ := newAccountServiceTest(t)

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:    7,
		Email: "user@example.com",
	}, nil)

	var storedHash string
	userRepo.On("SetResetToken", mock.Anything, int64(7), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	var mailedURL string
	mailer.On("SendPasswordResetEmail", "user@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			mailedURL = args.String(1)
		}).
		Return(nil)

	err := svc.RequestPasswordReset(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Contains(t, mailedURL, "http://localhost:5173/reset-password/")

	// The mailed link carries the cleartext token, the store only its hash
	cleartext := mailedURL[len("http://localhost:5173/reset-password/"):]
	assert.Len(t, cleartext, 64)
	assert.Equal(t, auth.HashResetToken(cleartext), storedHash)
	assert.NotEqual(t, cleartext, storedHash)

	userRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendPasswordResetEmail", 1)
}

func TestAccountService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	svc, userRepo, _, mailer, _ := newAccountServiceTest(t)

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, utils.NewNotFoundError("User", "email=nobody@example.com"))

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")

	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	mailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
}

func TestAccountService_RequestPasswordReset_MailFailure(t *testing.T) {
	svc, userRepo, _, mailer, _ := newAccountServiceTest(t)

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:    7,
		Email: "user@example.com",
	}, nil)
	userRepo.On("SetResetToken", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendPasswordResetEmail", "user@example.com", mock.Anything).
		Return(errors.New("smtp connection refused"))

	err := svc.RequestPasswordReset(context.Background(), "user@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInternalServer)
}

func TestAccountService_ResetPassword(t *testing.T) {
	svc, userRepo, _, _, hasher := newAccountServiceTest(t)

	cleartext, tokenHash, err := auth.GenerateResetToken()
	require.NoError(t, err)

	userRepo.On("RedeemResetToken", mock.Anything, tokenHash, mock.MatchedBy(func(newHash string) bool {
		return hasher.Verify("new-password-1", newHash)
	})).Return(int64(7), nil)

	err = svc.ResetPassword(context.Background(), cleartext, "new-password-1")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAccountService_ResetPassword_InvalidToken(t *testing.T) {
	svc, userRepo, _, _, _ := newAccountServiceTest(t)

	userRepo.On("RedeemResetToken", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), utils.NewInvalidOrExpiredResetTokenError())

	err := svc.ResetPassword(context.Background(), "deadbeef", "new-password-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)
	userRepo.AssertExpectations(t)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	svc, userRepo, _, _, _ := newAccountServiceTest(t)

	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.User{
		ID:    7,
		Email: "user@example.com",
	}, nil)
	userRepo.On("DeleteCascade", mock.Anything, int64(7), mock.Anything).Return(nil)

	err := svc.DeleteAccount(context.Background(), 7)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAccountService_DeleteAccount_NotFound(t *testing.T) {
	svc, userRepo, _, _, _ := newAccountServiceTest(t)

	userRepo.On("GetByID", mock.Anything, int64(404)).
		Return(nil, utils.NewNotFoundError("User", 404))

	err := svc.DeleteAccount(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	userRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
}
