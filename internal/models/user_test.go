package models_test

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inotebook/backend/internal/models"
)

func TestNewUser(t *testing.T) {
	user := models.NewUser("Test User", "test@example.com")

	assert.Equal(t, "Test User", user.FullName)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUser_Sanitize(t *testing.T) {
	user := &models.User{
		ID:           7,
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		ResetTokenHash: sql.NullString{
			String: "token_hash",
			Valid:  true,
		},
		ResetTokenExpires: sql.NullTime{
			Time:  time.Now(),
			Valid: true,
		},
	}

	sanitized := user.Sanitize()

	assert.Empty(t, sanitized.PasswordHash)
	assert.False(t, sanitized.ResetTokenHash.Valid)
	assert.False(t, sanitized.ResetTokenExpires.Valid)
	// The original is untouched
	assert.Equal(t, "hashed_password", user.PasswordHash)
}

func TestUser_JSONNeverExposesCredentials(t *testing.T) {
	user := &models.User{
		ID:           7,
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		ResetTokenHash: sql.NullString{
			String: "token_hash",
			Valid:  true,
		},
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hashed_password")
	assert.NotContains(t, string(data), "token_hash")
	assert.Contains(t, string(data), "test@example.com")
}

func TestAdmin_Sanitize(t *testing.T) {
	admin := &models.Admin{
		ID:           3,
		Email:        "admin@example.com",
		PasswordHash: "hashed_password",
	}

	sanitized := admin.Sanitize()

	assert.Empty(t, sanitized.PasswordHash)
	assert.Equal(t, "hashed_password", admin.PasswordHash)
}
