package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/orders"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/broker"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/inventory-dashboard/internal/interfaces/http"
	"github.com/jhoicas/inventory-dashboard/pkg/config"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	storeLog := log.Component("store")
	deps := inventory.StoreDeps{Logger: &storeLog}

	var pool *pgxpool.Pool
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de inventario")
		}
		deps.ProductRepo = postgres.NewProductRepository(pool)
		deps.MovementRepo = postgres.NewStockMovementRepository(pool)
	}

	store := inventory.NewStore(deps)
	if pool != nil {
		if err := store.Restore(ctx, postgres.NewSnapshotRunner(pool)); err != nil {
			log.Fatal().Err(err).Msg("restaurar inventario")
		}
	}

	// Listeners: métricas, WebSocket y (si hay brokers) Kafka
	m := metrics.New()
	store.AddListener(m)

	hub := ws.NewHub(log.Component("ws"))
	go hub.Run(ctx)
	store.AddListener(hub)

	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar producer kafka")
			}
		}()
		store.AddListener(broker.NewMovementPublisher(producer))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de movimientos en kafka activa")
	}

	loc, _ := cfg.Inventory.Location() // validada en config.Load
	productUC := usecase.NewProductUseCase(store)
	supplierUC := usecase.NewSupplierUseCase(store)
	orderUC := orders.NewOrderUseCase(log.Component("orders"))
	replenishmentUC := inventory.NewReplenishmentUseCase(store)
	dashboardUC := appanalytics.NewDashboardUseCase(store, loc)

	if cfg.Inventory.SeedDemo {
		seedLog := log.Component("seed")
		if _, err := seed.LoadCatalog(ctx, store, seedLog); err != nil {
			log.Fatal().Err(err).Msg("seed de catálogo")
		}
		if _, err := seed.LoadDirectory(ctx, store, supplierUC, orderUC, seedLog); err != nil {
			log.Fatal().Err(err).Msg("seed de proveedores y pedidos")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   cfg.App.Name,
			"movements": store.LedgerLength(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:         store,
		ProductUC:     productUC,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		DashboardDays: cfg.Inventory.DashboardDays,
		OrderUC:       orderUC,
		SupplierUC:    supplierUC,
		Metrics:       m,
		Hub:           hub,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	cancelRun()

	log.Info().Msg("aplicación detenida")
}
