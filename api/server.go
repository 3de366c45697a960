package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// SetupRouter creates and configures the HTTP router.
func SetupRouter(handler *Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Timeout(120 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(principal)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", handler.UploadDocument)
			r.Delete("/{id}", handler.DeleteDocument)
		})

		r.Route("/conversations/{conversationId}", func(r chi.Router) {
			r.Get("/documents", handler.ListDocuments)
			r.Post("/search", handler.SearchDocuments)
		})
	})

	return r
}
