package api

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/poiesic/chatdocs/auth"
)

// PrincipalHeader carries the authenticated user identity, set by the
// fronting auth proxy.
const PrincipalHeader = "X-User-Principal"

// requestLogger logs each HTTP request with its status and duration.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()))
		})
	}
}

// principal extracts the authenticated principal from the request header
// and places it on the context. Requests without a principal are
// rejected before reaching a handler.
func principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := r.Header.Get(PrincipalHeader)
		if value == "" {
			writeError(w, http.StatusUnauthorized, "missing user principal")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), value)))
	})
}
