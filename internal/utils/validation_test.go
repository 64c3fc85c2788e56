package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestDecodeAndValidate(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(`{"fullname":"Test User","email":"test@example.com","password":"password123"}`), &req)

	require.NoError(t, err)
	assert.Equal(t, "Test User", req.FullName)
	assert.Equal(t, "test@example.com", req.Email)
}

func TestDecodeAndValidate_EmptyBody(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(``), &req)

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(`{"fullname":`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusCode(err))
}

func TestDecodeAndValidate_UnknownField(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(`{"fullname":"Test","email":"t@e.com","password":"password123","role":"admin"}`), &req)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Contains(t, err.Error(), "unknown field")
}

func TestDecodeAndValidate_TrailingData(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(`{"fullname":"Test User","email":"test@example.com","password":"password123"}{"extra":true}`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusCode(err))
}

func TestDecodeAndValidate_WrongType(t *testing.T) {
	var req models.SignupRequest
	err := utils.DecodeAndValidate(jsonRequest(`{"fullname":42,"email":"test@example.com","password":"password123"}`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusCode(err))
}

func TestValidateStruct_SingleFieldError(t *testing.T) {
	req := models.SignupRequest{
		FullName: "Test User",
		Email:    "not-an-email",
		Password: "password123",
	}

	err := utils.ValidateStruct(&req)

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	// Field names come from json tags, not struct fields
	assert.Equal(t, "email", appErr.Field)
	assert.Contains(t, appErr.Message, "valid email")
}

func TestValidateStruct_MultipleFieldErrors(t *testing.T) {
	req := models.SignupRequest{}

	err := utils.ValidateStruct(&req)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Empty(t, appErr.Field)
}

func TestValidateStruct_ShortPassword(t *testing.T) {
	req := models.SignupRequest{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "short",
	}

	err := utils.ValidateStruct(&req)

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "password", appErr.Field)
}

func TestValidateStruct_LoginPasswordOptional(t *testing.T) {
	// Login requests validate without a password; the service layer
	// rejects them so the failure is indistinguishable from a mismatch.
	req := models.LoginRequest{
		Email: "test@example.com",
	}

	assert.NoError(t, utils.ValidateStruct(&req))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, utils.IsValidEmail("user@example.com"))
	assert.True(t, utils.IsValidEmail("user+tag@sub.example.com"))
	assert.False(t, utils.IsValidEmail("not-an-email"))
	assert.False(t, utils.IsValidEmail(""))
	assert.False(t, utils.IsValidEmail("user@"))
}
