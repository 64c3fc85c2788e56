package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/constants"
	"github.com/inotebook/backend/internal/handlers"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// MockAdminManager is a mock implementation of handlers.AdminManager
type MockAdminManager struct {
	mock.Mock
}

func (m *MockAdminManager) Register(ctx context.Context, req *models.AdminRegisterRequest) (*models.Admin, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminManager) Login(ctx context.Context, req *models.AdminLoginRequest) (*models.Admin, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Admin), args.String(1), args.Error(2)
}

func (m *MockAdminManager) VerifyAccount(ctx context.Context, adminID int64) error {
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

// MockDashboardProvider is a mock implementation of handlers.DashboardProvider
type MockDashboardProvider struct {
	mock.Mock
}

func (m *MockDashboardProvider) GetDashboardData(ctx context.Context) (*models.DashboardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardData), args.Error(1)
}

func newAdminHandlerTest(t *testing.T) (*handlers.AdminHandler, *MockAdminManager, *MockDashboardProvider) {
	t.Helper()

	admins := new(MockAdminManager)
	dashboard := new(MockDashboardProvider)
	cookies := auth.NewCookieManager(constants.AdminSessionCookie, 24*time.Hour, false)
	return handlers.NewAdminHandler(admins, dashboard, cookies), admins, dashboard
}

func TestAdminHandler_Register(t *testing.T) {
	handler, admins, _ := newAdminHandlerTest(t)

	admins.On("Register", mock.Anything, mock.MatchedBy(func(req *models.AdminRegisterRequest) bool {
		return req.Email == "admin@example.com"
	})).Return(&models.Admin{ID: 1, Email: "admin@example.com"}, nil)

	body := `{"email":"admin@example.com","password":"password123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/register", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Register(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com")
	// Registration does not log the admin in
	assert.Empty(t, rec.Result().Cookies())
	admins.AssertExpectations(t)
}

func TestAdminHandler_Register_DuplicateEmail(t *testing.T) {
	handler, admins, _ := newAdminHandlerTest(t)

	admins.On("Register", mock.Anything, mock.Anything).
		Return(nil, utils.NewDuplicateError("Admin", "email", "admin@example.com"))

	body := `{"email":"admin@example.com","password":"password123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/register", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Register(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	admins.AssertExpectations(t)
}

func TestAdminHandler_Login(t *testing.T) {
	handler, admins, _ := newAdminHandlerTest(t)

	admins.On("Login", mock.Anything, mock.Anything).
		Return(&models.Admin{ID: 3, Email: "admin@example.com"}, "admin-session-token", nil)

	body := `{"email":"admin@example.com","password":"password123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Login(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, constants.AdminSessionCookie, cookies[0].Name)
	assert.Equal(t, "admin-session-token", cookies[0].Value)
	admins.AssertExpectations(t)
}

func TestAdminHandler_Login_InvalidCredentials(t *testing.T) {
	handler, admins, _ := newAdminHandlerTest(t)

	admins.On("Login", mock.Anything, mock.Anything).
		Return(nil, "", utils.NewInvalidCredentialsError())

	body := `{"email":"admin@example.com","password":"wrong"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Login(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), constants.CodeInvalidCredentials)
	assert.Empty(t, rec.Result().Cookies())
	admins.AssertExpectations(t)
}

func TestAdminHandler_Logout(t *testing.T) {
	handler, _, _ := newAdminHandlerTest(t)

	r := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, constants.AdminSessionCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func adminRequest(r *http.Request, adminID int64) *http.Request {
	ctx := context.WithValue(r.Context(), auth.AccountIDContextKey, adminID)
	return r.WithContext(ctx)
}

func TestAdminHandler_DashboardData(t *testing.T) {
	handler, admins, dashboard := newAdminHandlerTest(t)

	admins.On("VerifyAccount", mock.Anything, int64(3)).Return(nil)
	dashboard.On("GetDashboardData", mock.Anything).Return(&models.DashboardData{
		TotalUsers:  42,
		TotalNotes:  120,
		ActiveUsers: 15,
	}, nil)

	r := adminRequest(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard-data", nil), 3)
	rec := httptest.NewRecorder()

	handler.DashboardData(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_users":42`)
	admins.AssertExpectations(t)
	dashboard.AssertExpectations(t)
}

func TestAdminHandler_DashboardData_Unauthenticated(t *testing.T) {
	handler, _, dashboard := newAdminHandlerTest(t)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard-data", nil)
	rec := httptest.NewRecorder()

	handler.DashboardData(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	dashboard.AssertNotCalled(t, "GetDashboardData", mock.Anything)
}

func TestAdminHandler_DashboardData_DeletedAccount(t *testing.T) {
	handler, admins, dashboard := newAdminHandlerTest(t)

	admins.On("VerifyAccount", mock.Anything, int64(3)).
		Return(utils.NewUnauthorizedError(""))

	r := adminRequest(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard-data", nil), 3)
	rec := httptest.NewRecorder()

	handler.DashboardData(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	dashboard.AssertNotCalled(t, "GetDashboardData", mock.Anything)
	admins.AssertExpectations(t)
}

func TestAdminHandler_DashboardData_Error(t *testing.T) {
	handler, admins, dashboard := newAdminHandlerTest(t)

	admins.On("VerifyAccount", mock.Anything, int64(3)).Return(nil)
	dashboard.On("GetDashboardData", mock.Anything).
		Return(nil, errors.New("database connection error"))

	r := adminRequest(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard-data", nil), 3)
	rec := httptest.NewRecorder()

	handler.DashboardData(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	dashboard.AssertExpectations(t)
}
