package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// AuthHandler handles the user credential and session routes.
type AuthHandler struct {
	accounts AccountManager
	cookies  *auth.CookieManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts AccountManager, cookies *auth.CookieManager) *AuthHandler {
	if accounts == nil {
		panic("accounts cannot be nil")
	}
	if cookies == nil {
		panic("cookies cannot be nil")
	}
	return &AuthHandler{
		accounts: accounts,
		cookies:  cookies,
	}
}

// Signup handles account creation. A successful signup attaches a
// session cookie, so the new account is immediately logged in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.accounts.Signup(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.cookies.Attach(w, token)
	utils.JSON(w, http.StatusCreated, user)
}

// Login handles user authentication.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.accounts.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.cookies.Attach(w, token)
	utils.JSON(w, http.StatusOK, user)
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; only the client-side copy is discarded.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// RequestPasswordReset starts the reset workflow. An unknown email
// reports not found.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

// ResetPassword redeems a reset token from the URL path and installs
// the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ErrorFromAppError(w, utils.NewInvalidOrExpiredResetTokenError())
		return
	}

	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), token, req.Password); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Password has been reset"})
}

// DeleteAccount removes the authenticated user's account together with
// all their notes, then clears the session cookie.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.cookies.Clear(w)
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}
