// Package auth provides session tokens, password hashing, reset tokens,
// and the cookie transport and middleware that tie them to requests.
package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inotebook/backend/internal/constants"
	"github.com/inotebook/backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// AccountIDContextKey is the context key for the authenticated account ID.
// The same key serves both the user and admin namespaces; a request only
// ever passes through one of the two middlewares.
const AccountIDContextKey ContextKey = constants.AccountIDContextKey

// RequireSession returns middleware that authenticates requests via the
// session cookie of one namespace. The token is read from the cookie,
// verified, and the account ID attached to the request context. Every
// failure mode answers with the same generic 401: whether the token was
// missing, expired, or tampered with is logged but never disclosed to
// the client.
func RequireSession(tokens *TokenService, cookies *CookieManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.Extract(r)
			if err != nil {
				utils.Unauthorized(w, "")
				return
			}

			accountID, err := tokens.Verify(token)
			if err != nil {
				log.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Err(err).
					Msg("Session verification failed")

				utils.Unauthorized(w, "")
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDContextKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID extracts the authenticated account ID from the request
// context. The boolean reports whether the request passed through a
// session middleware.
func GetAccountID(r *http.Request) (int64, bool) {
	accountID, ok := r.Context().Value(AccountIDContextKey).(int64)
	return accountID, ok
}
