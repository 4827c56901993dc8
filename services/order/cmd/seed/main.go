// Command seed merges pickup hub reference data and a sample catalog into the
// order database. Rows are upserted by id, so the command can be re-run.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	pkgconfig "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/config"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/logger"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/repository"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/repository/postgres"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/migrations"
)

type config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Products also seeds the sample catalog; hubs are always seeded.
	Products bool `env:"SEED_PRODUCTS" envDefault:"true"`
	pkgconfig.Postgres
}

func main() {
	var cfg config
	if err := pkgconfig.Load(&cfg); err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("order-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	pool, err := database.Connect(ctx, cfg.DSN(), database.DefaultPoolOptions(), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var products repository.ProductRepository
	if cfg.Products {
		products = postgres.NewProductRepository(pool)
	}
	return seed(ctx, postgres.NewPickupHubRepository(pool), products, log)
}

// seed upserts every hub and, when products is non-nil, the sample catalog.
func seed(ctx context.Context, hubs repository.PickupHubRepository, products repository.ProductRepository, log *slog.Logger) error {
	for _, h := range pickupHubs {
		if err := hubs.Upsert(ctx, h); err != nil {
			return err
		}
	}
	log.Info("pickup hubs merged", slog.Int("count", len(pickupHubs)))

	if products == nil {
		return nil
	}
	for _, p := range sampleProducts {
		if err := products.Upsert(ctx, p); err != nil {
			return err
		}
	}
	log.Info("sample catalog merged", slog.Int("count", len(sampleProducts)))
	return nil
}
