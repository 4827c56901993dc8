package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/health"
	pkgkafka "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/kafka"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/middleware"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/tracing"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/config"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/event"
	handler "github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/handler/http"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/repository/postgres"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/internal/service"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/commission/migrations"
)

const serviceName = "commission-service"

// App wires together all dependencies and runs the commission service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	consumer       *pkgkafka.Consumer
	dlq            *pkgkafka.DLQProducer
	limiter        *middleware.IPRateLimiter
	httpServer     *http.Server
	shutdownTracer func(context.Context) error
}

// NewApp connects to Postgres (and Redis and Kafka when the ledger consumer
// is enabled) and builds the HTTP server.
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
	database.RegisterPoolMetrics(pool, "commission")
	database.LogSlowQueries(250*time.Millisecond, logger)

	if cfg.Migrate {
		if err := database.Migrate(initCtx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	commissionService := service.NewCommissionService(postgres.NewCommissionRepository(pool), logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", health.FromPinger(pool))

	a := &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		shutdownTracer: shutdownTracer,
	}

	if cfg.LedgerConsumer {
		rdb, err := database.NewRedisClient(initCtx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		healthHandler.Register("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		healthHandler.Register("kafka", func(ctx context.Context) error { return pkgkafka.PingBrokers(ctx, cfg.Brokers) })

		a.redis = rdb
		a.dlq = pkgkafka.NewDLQProducer(cfg.Brokers, logger)
		store := pkgkafka.NewRedisIdempotencyStore(rdb, "commission:events", 7*24*time.Hour)
		payments := event.NewPaymentConsumer(commissionService, logger)
		a.consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.ConsumerGroup,
			Topic:   event.TopicPaymentSucceeded,
		}, pkgkafka.IdempotentHandler(store, payments.HandlePaymentSucceeded, logger), a.dlq, logger)
		logger.Info("payment consumer initialized", slog.String("topic", event.TopicPaymentSucceeded))
	}

	a.limiter = middleware.NewIPRateLimiter(cfg.RatePerSec, cfg.RateBurst, 10*time.Minute)
	router := handler.NewRouter(commissionService, healthHandler, handler.RouterConfig{
		Tokens:  middleware.NewJWTValidator(cfg.JWTSecret),
		Limiter: a.limiter,
		CORS:    middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins},
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

// Run serves HTTP and consumes payment events until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go a.limiter.Run(ctx)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Run(ctx); err != nil {
				errCh <- fmt.Errorf("payment consumer: %w", err)
			}
		}()
	}

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
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
	}
	if a.dlq != nil {
		if err := a.dlq.Close(); err != nil {
			a.logger.Error("dlq producer close error", slog.String("error", err.Error()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	a.pool.Close()
	if err := a.shutdownTracer(ctx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}
	a.logger.Info("application shutdown complete")
}
