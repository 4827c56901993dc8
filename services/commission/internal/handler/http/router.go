package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/health"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/service"
)

// RouterConfig carries the edge settings shared by all routes.
type RouterConfig struct {
	Tokens  middleware.TokenValidator
	Limiter *middleware.IPRateLimiter
	CORS    middleware.CORSConfig
}

// NewRouter creates a chi router with all commission service routes registered.
func NewRouter(
	svc *service.CommissionService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("commission"))
	r.Use(middleware.Tracing("commission"))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	h := NewCommissionHandler(svc, logger)

	r.Route("/api/v1/commissions", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(middleware.RateLimit(cfg.Limiter, logger))
		}
		r.Use(middleware.Identity(cfg.Tokens, logger))
		r.Use(middleware.RequestLogger(logger))
		r.Use(middleware.RequireJSON)

		r.With(middleware.CacheControl(time.Hour)).Get("/rates", h.GetRates)
		r.Post("/quote", h.Quote)
		r.With(middleware.RequireCaller).Get("/", h.ListCommissions)
	})

	return r
}
