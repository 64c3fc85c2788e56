package handlers

import (
	"net/http"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// AdminHandler handles the admin namespace routes: registration, login,
// logout, and the dashboard analytics.
type AdminHandler struct {
	admins    AdminManager
	dashboard DashboardProvider
	cookies   *auth.CookieManager
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admins AdminManager, dashboard DashboardProvider, cookies *auth.CookieManager) *AdminHandler {
	if admins == nil {
		panic("admins cannot be nil")
	}
	if dashboard == nil {
		panic("dashboard cannot be nil")
	}
	if cookies == nil {
		panic("cookies cannot be nil")
	}
	return &AdminHandler{
		admins:    admins,
		dashboard: dashboard,
		cookies:   cookies,
	}
}

// Register handles admin account creation.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AdminRegisterRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	admin, err := h.admins.Register(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, admin)
}

// Login handles admin authentication and attaches the admin session
// cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	admin, token, err := h.admins.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.cookies.Attach(w, token)
	utils.JSON(w, http.StatusOK, admin)
}

// Logout clears the admin session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// DashboardData returns the admin dashboard analytics. The admin row is
// re-checked before serving: a session token outlives its account, so a
// deleted admin must not keep reading dashboard data.
func (h *AdminHandler) DashboardData(w http.ResponseWriter, r *http.Request) {
	adminID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	if err := h.admins.VerifyAccount(r.Context(), adminID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	data, err := h.dashboard.GetDashboardData(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, data)
}
