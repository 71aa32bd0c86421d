// Package api provides the HTTP API for snapcontext.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/api/handler"
	"github.com/snapcontext/snapcontext/internal/api/middleware"
	"github.com/snapcontext/snapcontext/internal/camctx"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	FetchMetrics *middleware.FetchMetrics
	Orchestrator *camctx.Orchestrator
	Registry     *resilience.Registry
}

// NewRouter creates a chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "snapcontext-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)

	contextHandler := handler.NewContextHandler(cfg.Orchestrator, cfg.FetchMetrics, cfg.Logger)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)

	fetchRateLimit := middleware.RateLimitByIP(middleware.FetchRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		// Context endpoints. The fetch fans out to upstream providers on a
		// cache miss, so it carries the stricter limit.
		r.Route("/context", func(r chi.Router) {
			r.With(fetchRateLimit).Get("/", contextHandler.GetContext)
			r.Route("/cache", func(r chi.Router) {
				r.Use(standardRateLimit)
				r.Get("/", contextHandler.GetCacheStatus)
				r.Delete("/", contextHandler.ClearCache)
			})
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})
	})

	return r
}
