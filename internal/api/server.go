// Copyright (c) 2026 Aethercal. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation layer boundary.
  - It acts as the central composition root for the HTTP transport (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aetherialcal/aethercal/internal/auth"
	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/campaign/almanac"
	"github.com/aetherialcal/aethercal/internal/campaign/category"
	"github.com/aetherialcal/aethercal/internal/campaign/completion"
	"github.com/aetherialcal/aethercal/internal/campaign/event"
	"github.com/aetherialcal/aethercal/internal/campaign/group"
	"github.com/aetherialcal/aethercal/internal/campaign/session"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/config"
	"github.com/aetherialcal/aethercal/internal/platform/constants"
	"github.com/aetherialcal/aethercal/internal/platform/ctxutil"
	"github.com/aetherialcal/aethercal/internal/platform/middleware"
	"github.com/aetherialcal/aethercal/internal/platform/respond"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Auth handles the master-password login.
	Auth *auth.Handler

	// Calendar serves the fictional calendar definition.
	Calendar *calendar.Handler

	// Session manages campaigns and their secret-gated deletion.
	Session *session.Handler

	// Event manages calendar events, recurrence, and search.
	Event *event.Handler

	// Group manages party groups and their positions.
	Group *group.Handler

	// Category manages event categories.
	Category *category.Handler

	// Completion manages completed-day markers.
	Completion *completion.Handler

	// Almanac manages holidays and weather.
	Almanac *almanac.Handler

	// Realtime upgrades websocket connections into campaign rooms.
	Realtime *realtime.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, limiter *middleware.RateLimiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(limiter.Handler())
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration, plus the websocket
	// upgrade, which authenticates at the application level via its join frame.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Get("/ws", h.Realtime.ServeWS)

	// # Application API
	// The websocket upgrade stays outside the global timeout; everything under
	// /api is a plain request/response and gets the deadline.
	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		api.Route("/auth", func(router chi.Router) {
			h.Auth.RegisterRoutes(router)
		})
		api.Route("/calendar", func(router chi.Router) {
			h.Calendar.RegisterRoutes(router)
		})

		api.Route("/sessions", func(router chi.Router) {
			// The join screen checks existence and the deletion flow carries
			// its own secret, so both stay reachable without a token.
			h.Session.RegisterPublicRoutes(router)

			router.Group(func(protected chi.Router) {
				protected.Use(requireAuth)
				h.Session.RegisterRoutes(protected)
				h.Event.RegisterSessionRoutes(protected)
				h.Group.RegisterSessionRoutes(protected)
				h.Category.RegisterSessionRoutes(protected)
				h.Completion.RegisterSessionRoutes(protected)
				h.Almanac.RegisterSessionRoutes(protected)
			})
		})

		api.Route("/events", func(router chi.Router) {
			router.Use(requireAuth)
			h.Event.RegisterRoutes(router)
		})
		api.Route("/groups", func(router chi.Router) {
			router.Use(requireAuth)
			h.Group.RegisterRoutes(router)
		})
		api.Route("/categories", func(router chi.Router) {
			router.Use(requireAuth)
			h.Category.RegisterRoutes(router)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// requireAuth rejects requests whose context carries no verified claims.
// The Authenticate middleware has already validated any presented token.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
