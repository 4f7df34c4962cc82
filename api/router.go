package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sua7dev/qr-generator/session"
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Sessions   *session.Store
	CookieName string
	Log        *slog.Logger
	Version    string
	StartTime  time.Time
}

// NewRouter returns a fully configured chi router with all routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))

	// Interactive page
	r.Get("/", s.handlePage)
	r.Post("/generate", s.handleGenerate)
	r.Post("/reset", s.handleReset)
	r.Get("/download", s.handleDownload)
	r.Post("/feedback", s.handleFeedback)

	// Stateless image endpoint
	r.Group(func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Get("/qr.png", s.handleQRImage)
		r.Options("/qr.png", func(w http.ResponseWriter, r *http.Request) {})
	})

	r.Get("/status", s.handleStatus)

	return r
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// --- middleware --------------------------------------------------------------

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr)
		})
	}
}
