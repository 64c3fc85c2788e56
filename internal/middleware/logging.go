package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/inotebook/backend/internal/utils"
)

// RequestLogger logs every completed request with its status code and
// latency, keyed by the chi request ID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		utils.LogHTTPRequest(
			chimiddleware.GetReqID(r.Context()),
			r.Method,
			r.URL.Path,
			r.RemoteAddr,
			ww.Status(),
			time.Since(start),
		)
	})
}
