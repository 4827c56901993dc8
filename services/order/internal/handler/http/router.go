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
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/service"
)

// RouterConfig carries the edge settings shared by all routes.
type RouterConfig struct {
	Tokens  middleware.TokenValidator
	Limiter *middleware.IPRateLimiter
	CORS    middleware.CORSConfig
}

// NewRouter creates a chi router with all order service routes registered.
func NewRouter(
	orderService *service.OrderService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("order"))
	r.Use(middleware.Tracing("order"))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	h := NewOrderHandler(orderService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(middleware.RateLimit(cfg.Limiter, logger))
		}
		r.Use(middleware.Identity(cfg.Tokens, logger))
		r.Use(middleware.RequestLogger(logger))

		r.With(middleware.CacheControl(5*time.Minute)).Get("/pickup-hubs", h.ListPickupHubs)

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireCaller)
			r.Use(middleware.RequireJSON)
			r.Post("/", h.CreateOrder)
			r.Get("/", h.ListOrders)
			r.Get("/{id}", h.GetOrder)
		})
	})

	return r
}
