package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/health"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httpclient"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/tracing"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/config"
	handler "github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/handler/http"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider/mock"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/provider/stripe"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/repository/postgres"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/internal/service"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/payment/migrations"
)

const serviceName = "payment-service"

// App wires together all dependencies and runs the payment service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	limiter        *middleware.IPRateLimiter
	httpServer     *http.Server
	shutdownTracer func(context.Context) error
}

// NewApp connects to Postgres, applies migrations and builds the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	shutdownTracer, err := tracing.Init(initCtx, tracing.Config{
		Service:     serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRate:  cfg.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pool, err := database.Connect(initCtx, cfg.Postgres.DSN(), database.DefaultPoolOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool, "payment")
	database.LogSlowQueries(250*time.Millisecond, logger)

	if cfg.Migrate {
		if err := database.Migrate(initCtx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	paymentService := service.NewPaymentService(
		newGateway(cfg, logger),
		postgres.NewSessionRepository(pool),
		cfg.AppBaseURL,
		logger,
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", health.FromPinger(pool))

	limiter := middleware.NewIPRateLimiter(cfg.RatePerSec, cfg.RateBurst, 10*time.Minute)
	router := handler.NewRouter(paymentService, healthHandler, handler.RouterConfig{
		Tokens:  middleware.NewJWTValidator(cfg.JWTSecret),
		Limiter: limiter,
		CORS:    middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins},
	}, logger)

	return &App{
		cfg:     cfg,
		logger:  logger,
		pool:    pool,
		limiter: limiter,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      35 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		shutdownTracer: shutdownTracer,
	}, nil
}

// newGateway returns an untyped nil when no Stripe key is configured.
func newGateway(cfg *config.Config, logger *slog.Logger) provider.Gateway {
	if cfg.Driver == config.DriverMock {
		logger.Warn("payment driver is mock, checkout links are local")
		return mock.NewGateway(cfg.AppBaseURL)
	}
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY missing, payment links disabled")
		return nil
	}
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.StripeTimeout
	return stripe.NewGateway(stripe.Config{
		SecretKey: cfg.StripeSecretKey,
		APIURL:    cfg.StripeAPIURL,
		HTTP:      httpCfg,
	}, logger)
}

// Run serves HTTP until ctx is canceled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go a.limiter.Run(ctx)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.Shutdown()
		return err
	}

	a.Shutdown()
	return nil
}

// Shutdown stops accepting requests and releases every connection.
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.pool.Close()
	if err := a.shutdownTracer(ctx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}
	a.logger.Info("application shutdown complete")
}
