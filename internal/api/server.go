// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the HTTP surface of the portal: the middleware chain,
the health checks and the role-scoped domain routes.

# Pipeline

Every /api/v1 request passes, in order: request id, structured logging,
timeout, rate limiting, panic recovery, security headers, CORS, path
cleaning, the authentication gate, then the composer's role resolution,
domain gate, capability guard and feature gate before reaching a handler.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/bizportal/internal/platform/config"
	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/middleware"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Authenticator is the authentication gate in middleware form.
type Authenticator interface {
	Authenticate(next http.Handler) http.Handler
}

// Dependencies is everything the router needs, built in cmd/api.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Gate     Authenticator
	Composer *portal.Composer
	Health   HealthDependencies

	// RateLimitRPS and RateLimitBurst override the per-IP limiter defaults.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the full handler tree. ctx bounds the rate limiter's
// background sweeper.
func NewRouter(ctx context.Context, deps Dependencies) http.Handler {
	rps, burst := deps.RateLimitRPS, deps.RateLimitBurst
	if rps <= 0 {
		rps = constants.DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.NewRateLimiter(ctx, rps, burst).Handler)
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.SecureHeaders(deps.Config.IsProduction()))
	router.Use(middleware.CORS(deps.Config, deps.Config.CORSOriginSuffix))
	router.Use(chimw.CleanPath)

	router.NotFound(respond.RouteNotFound)
	router.MethodNotAllowed(respond.MethodNotAllowed)

	liveness, readiness := NewHealthHandlers(deps.Health, deps.Logger)
	router.Get("/health", liveness)
	router.Get("/ready", readiness)

	router.Route(constants.APIPrefix, func(api chi.Router) {
		api.Use(deps.Gate.Authenticate)
		deps.Composer.Attach(api)
	})

	return router
}

// Server owns the [http.Server] around the router.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// NewServer wraps handler with the portal's server timeouts.
func NewServer(port string, handler http.Handler, log *slog.Logger) *Server {
	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
