package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/inotebook/backend/internal/utils"
)

// Token errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidTokenClaims   = errors.New("invalid token claims")
)

// SessionClaims represents the claims in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens for one
// credential namespace. The user and admin namespaces each get their
// own TokenService with a distinct secret and audience, so a token
// from one namespace never verifies in the other.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

// NewTokenService creates a TokenService for a single namespace.
func NewTokenService(secret, issuer, audience string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
	}
}

// Expiry returns the validity window tokens are issued with.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue generates a new session token for the given account. The token
// is valid for the configured window from the moment of issuance and
// carries the account ID as its subject.
func (s *TokenService) Issue(accountID int64) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a session token and returns the account ID it was
// issued for. Expired tokens and tokens with a bad signature produce
// distinct errors so callers can report them separately.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, utils.NewExpiredTokenError()
		}
		return 0, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return 0, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return 0, utils.NewInvalidTokenError()
	}

	// Reject tokens minted for the other namespace
	if !claims.VerifyAudience(s.audience, true) {
		return 0, utils.NewInvalidTokenError()
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, utils.NewInvalidTokenError()
	}

	return accountID, nil
}
