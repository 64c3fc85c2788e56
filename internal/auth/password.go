package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/inotebook/backend/internal/constants"
)

// PasswordHasher hashes and verifies account passwords with bcrypt.
// The cost factor comes from configuration; the default of 10 keeps
// hashing slow enough to resist brute force without stalling login.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = constants.DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a bcrypt hash of the provided password. The salt is
// generated internally and encoded into the returned hash string.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the stored hash.
// bcrypt's comparison is constant-time.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetToken creates a password-reset token. The cleartext is
// 32 random bytes hex-encoded; it is sent to the account holder and
// never stored. Only the SHA-256 hash of the cleartext is persisted,
// so a database leak does not expose usable reset tokens.
func GenerateResetToken() (cleartext, hash string, err error) {
	buf := make([]byte, constants.ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	cleartext = hex.EncodeToString(buf)
	return cleartext, HashResetToken(cleartext), nil
}

// HashResetToken returns the hex-encoded SHA-256 hash of a reset token
// cleartext. Reset tokens are high-entropy random values, so a fast
// hash is sufficient here; bcrypt is reserved for passwords.
func HashResetToken(cleartext string) string {
	sum := sha256.Sum256([]byte(cleartext))
	return hex.EncodeToString(sum[:])
}
