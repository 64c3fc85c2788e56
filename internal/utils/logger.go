package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inotebook/backend/internal/config"
	"github.com/inotebook/backend/internal/constants"
)

// InitLogger initializes the global logger with the given configuration.
func InitLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Console format is only honored outside production
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
}

// LogHTTPRequest logs a completed HTTP request.
func LogHTTPRequest(requestID, method, path, remoteAddr string, statusCode int, latency time.Duration) {
	// Health probes are noise outside debug level
	if path == "/health" && zerolog.GlobalLevel() != zerolog.DebugLevel {
		return
	}

	event := log.Debug()
	if statusCode >= 500 {
		event = log.Error()
	} else if statusCode >= 400 {
		event = log.Warn()
	} else if strings.HasPrefix(path, "/api") {
		event = log.Info()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogAuth logs authentication events. Credential material never appears
// in the fields, only account identifiers and outcomes.
func LogAuth(event string, accountID int64, email string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("event", event).
		Bool("success", success)

	if accountID != 0 {
		logEvent = logEvent.Int64(constants.AccountIDContextKey, accountID)
	}
	if email != "" {
		logEvent = logEvent.Str("email", email)
	}
	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg("Auth event")
}

// LogDBQuery logs a database query for debugging. String arguments to
// queries touching credential columns are redacted.
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	lowered := strings.ToLower(query)
	sensitive := strings.Contains(lowered, "password_hash") ||
		strings.Contains(lowered, "reset_token") ||
		strings.Contains(lowered, "secret")

	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		if _, ok := arg.(string); ok && sensitive {
			safeArgs[i] = "[REDACTED]"
		} else {
			safeArgs[i] = arg
		}
	}

	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", safeArgs).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogPanic logs a recovered panic value
func LogPanic(recovered interface{}, stack []byte) {
	log.Error().
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}
