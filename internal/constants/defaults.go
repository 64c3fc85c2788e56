// Package constants centralizes configuration defaults, security parameters,
// and protocol-level values used across the iNoteBook backend.
package constants

import "time"

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Server defaults.
const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)

// Database defaults.
const (
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "disable"
	DefaultDBMaxConnections = 20
	DefaultDBMinConnections = 5
)

// Session token parameters. Tokens are valid for a fixed 24-hour window
// from issuance; logout only discards the client-side copy.
const (
	DefaultSessionExpiry = 24 * time.Hour
	SessionIssuer        = "inotebook-api"

	// Audiences separate the user and admin token namespaces on top of
	// the distinct signing secrets.
	UserTokenAudience  = "inotebook-users"
	AdminTokenAudience = "inotebook-admin"
)

// Session cookie names for the two namespaces. A user session cookie is
// never accepted on admin routes and vice versa.
const (
	UserSessionCookie  = "notes_token"
	AdminSessionCookie = "admin_token"
)

// Password reset parameters. The cleartext token is 32 random bytes,
// hex-encoded; only its SHA-256 hash is persisted, valid for 15 minutes.
const (
	ResetTokenBytes        = 32
	DefaultResetTokenTTL   = 15 * time.Minute
	DefaultPublicClientURL = "http://localhost:5173"
)

// Password hashing defaults. The bcrypt cost factor of 10 means ~2^10
// key-expansion rounds per hash.
const (
	DefaultBcryptCost = 10
	MinPasswordLength = 8
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Request handling limits.
const (
	MaxRequestBodySize = 1 << 20 // 1 MiB
)
