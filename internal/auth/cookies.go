package auth

import (
	"net/http"
	"time"

	"github.com/inotebook/backend/internal/utils"
)

// CookieManager reads and writes the session cookie for one credential
// namespace. Cookies are HttpOnly and SameSite=Strict; the Secure flag
// is set everywhere except development so local HTTP still works.
type CookieManager struct {
	name   string
	ttl    time.Duration
	secure bool
}

// NewCookieManager creates a CookieManager for the given cookie name.
// The TTL should match the session token expiry so the cookie and the
// token inside it lapse together.
func NewCookieManager(name string, ttl time.Duration, secure bool) *CookieManager {
	return &CookieManager{
		name:   name,
		ttl:    ttl,
		secure: secure,
	}
}

// Attach sets the session cookie carrying the given token.
func (c *CookieManager) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie. This only discards the client-side
// copy; an already issued token stays valid until its expiry.
func (c *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Extract returns the session token from the request cookie, or an
// unauthorized error when the cookie is absent.
func (c *CookieManager) Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", utils.ErrUnauthorized
	}
	return cookie.Value, nil
}
