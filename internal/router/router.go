package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vidbrief-backend/internal/handlers"
	"vidbrief-backend/internal/middleware"
	"vidbrief-backend/web"
)

func New(summarizeHandler *handlers.SummarizeHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/summarize", summarizeHandler.Summarize)

	// Embedded form/display UI
	r.Handle("/*", http.FileServer(http.FS(web.Static())))

	return r
}
