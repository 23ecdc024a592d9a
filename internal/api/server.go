package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pointage/internal/auth"
	"pointage/internal/config"
	"pointage/internal/logging"
	"pointage/models"
	"pointage/ports"
)

// Server wires the HTTP surface: router, middleware and handlers
type Server struct {
	router *chi.Mux
	log    *logging.Logger
}

// Handlers groups everything the router mounts
type Handlers struct {
	Auth         *AuthHandler
	TimeTracking *TimeTrackingHandler
	Dashboard    *DashboardHandler
	Workstations *WorkstationHandler
	Reports      *ReportHandler
}

// NewServer creates the HTTP server
func NewServer(cfg config.ServerConfig, issuer *auth.TokenIssuer, users ports.UserRepository, handlers Handlers, log *logging.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    log,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// The SSE stream is long-lived, so the timeout is applied per-group
	// below instead of globally.
	timeout := middleware.Timeout(cfg.RequestTimeout)

	writeError := func(w http.ResponseWriter, r *http.Request, err error) {
		respondError(log, w, r, err)
	}
	authenticate := auth.Middleware(issuer, users, writeError)
	supervisorOnly := auth.RequireRole(writeError, models.RoleSupervisor, models.RoleAdmin)
	adminOnly := auth.RequireRole(writeError, models.RoleAdmin)

	s.router.With(timeout).Get("/healthz", s.handleHealth)
	s.router.With(timeout).Post("/api/auth/login", handlers.Auth.Login)

	s.router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.With(timeout).Get("/api/auth/me", handlers.Auth.Me)

		r.Route("/api/timetracking", func(r chi.Router) {
			r.Use(timeout)
			r.Get("/status", handlers.TimeTracking.Status)
			r.Post("/start", handlers.TimeTracking.Start)
			r.Post("/break", handlers.TimeTracking.Break)
			r.Post("/end", handlers.TimeTracking.End)
			r.Get("/history", handlers.TimeTracking.History)
		})

		r.Route("/api/dashboard", func(r chi.Router) {
			r.Use(supervisorOnly)
			r.With(timeout).Get("/active", handlers.Dashboard.Active)
			r.With(timeout).Get("/daily", handlers.Dashboard.Daily)
			r.With(timeout).Get("/workstations", handlers.Dashboard.Workstations)
			r.Get("/stream", handlers.Dashboard.Stream)
		})

		r.With(timeout, supervisorOnly).Get("/api/reports/summary", handlers.Reports.Summary)

		r.Route("/api/workstations", func(r chi.Router) {
			r.Use(timeout)
			r.Get("/", handlers.Workstations.List)
			r.Get("/{code}/qr", handlers.Workstations.QRCode)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", handlers.Workstations.Create)
				r.Put("/{code}", handlers.Workstations.Update)
			})
		})
	})

	return s
}

// Router returns the configured http.Handler
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}, "")
}
