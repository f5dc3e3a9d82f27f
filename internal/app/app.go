// Package app provides application-level wiring for the listing server:
// it builds the handler, middleware chain and metrics from config and a
// loaded dataset.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"datalist/internal/api"
	"datalist/internal/config"
	"datalist/internal/domain"
	"datalist/internal/engine"
	"datalist/internal/metrics"
	"datalist/internal/middleware"
	"datalist/internal/ui"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg     *config.Config
	Dataset domain.Dataset
	Logger  *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Handler *api.Handler
	Metrics *metrics.Metrics // nil when metrics are disabled
	Router  http.Handler
}

// New wires the engine, handler, metrics and router from deps. ctx bounds
// background work started by the middleware (rate limiter sweeps).
func New(ctx context.Context, deps Deps) *App {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		m.SetDatasetSize(deps.Dataset.Len())
	}

	eng := engine.New(engine.WithLocale(cfg.SortLocale))
	h := api.NewHandler(deps.Dataset, eng, m, logger.With("component", "api"))
	pages := ui.NewHandler(deps.Dataset, eng, logger.With("component", "ui"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger.With("component", "http")))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins}))

	// Health and metrics stay reachable under load.
	r.Group(func(r chi.Router) {
		r.Get("/healthz", h.Health)
		if m != nil {
			r.Handle("/metrics", m.Handler())
		}
	})

	r.Group(func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimitRPS,
				Burst:             cfg.RateLimitBurst,
				OnReject:          m.IncRateLimited,
			}))
		}
		h.RegisterRoutes(r)
		pages.RegisterRoutes(r)
	})

	return &App{Handler: h, Metrics: m, Router: r}
}
