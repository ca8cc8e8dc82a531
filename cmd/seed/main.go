// seed carga el catálogo y los movimientos de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*). Si el catálogo
// persistido ya tiene productos no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	"github.com/jhoicas/inventory-dashboard/pkg/config"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	storeLog := log.Component("store")
	store := inventory.NewStore(inventory.StoreDeps{
		ProductRepo:  postgres.NewProductRepository(pool),
		MovementRepo: postgres.NewStockMovementRepository(pool),
		Logger:       &storeLog,
	})
	if err := store.Restore(ctx, postgres.NewSnapshotRunner(pool)); err != nil {
		return err
	}

	res, err := seed.LoadCatalog(ctx, store, log.Component("seed"))
	if err != nil {
		return err
	}
	fmt.Printf("Productos: %d, movimientos: %d\n", res.Products, res.Movements)
	return nil
}
