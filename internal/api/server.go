package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rcalloway/notesynth/internal/config"
	"github.com/rcalloway/notesynth/internal/genai"
	"github.com/rcalloway/notesynth/internal/jobs"
	"github.com/rcalloway/notesynth/internal/synth"
)

// Server is the HTTP API for notesynth.
type Server struct {
	router   chi.Router
	runner   *jobs.Runner
	pipeline *synth.Pipeline
	stats    *genai.Stats
	model    string
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *jobs.Runner, pipeline *synth.Pipeline, stats *genai.Stats, model string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:   runner,
		pipeline: pipeline,
		stats:    stats,
		model:    model,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.NotesynthAPIKey, s.log))

		r.Post("/api/reports", s.handleCreateReport)
		r.Get("/api/reports/{jobID}", s.handleReportStatus)
		r.Delete("/api/reports/{jobID}", s.handleCancelReport)
		r.Post("/api/reports/gate", s.handleGate)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
