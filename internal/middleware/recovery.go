// Package middleware provides the HTTP middleware stack: panic
// recovery, security headers, CORS, and request logging.
package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/inotebook/backend/internal/constants"
	"github.com/inotebook/backend/internal/utils"
)

// Recovery recovers from panics in request handlers and returns a 500
// response instead of tearing down the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					utils.LogPanic(err, debug.Stack())

					utils.Error(
						w,
						http.StatusInternalServerError,
						constants.CodeInternalError,
						"An unexpected error occurred while processing your request",
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets the standard response hardening headers.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentType, constants.ContentTypeNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID reuses chi's request ID middleware so every request carries
// a correlation ID through logs.
func RequestID(next http.Handler) http.Handler {
	return chimiddleware.RequestID(next)
}
