// Package httpapi exposes document creation and access over HTTP. It is a
// thin front door: all policy lives in the vault package.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Lllllllleong/pdfvault/internal/models"
	"github.com/Lllllllleong/pdfvault/internal/observability"
	"github.com/Lllllllleong/pdfvault/internal/vault"
)

// Server routes HTTP requests to the lifecycle manager.
type Server struct {
	manager *vault.Manager
	router  chi.Router
}

func NewServer(manager *vault.Manager) *Server {
	s := &Server{manager: manager}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", observability.MetricsHandler())
	r.Post("/documents", s.handleCreateDocument)
	r.Post("/documents/{id}/access", s.handleAccessDocument)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
