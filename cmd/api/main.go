package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/lock"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/memory"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/ColiJD/CafeHenola-sub001/internal/interfaces/http"
	"github.com/ColiJD/CafeHenola-sub001/pkg/config"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma dependencias y sirve hasta recibir SIGINT/SIGTERM. Los defer cierran pool y Redis al salir.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	var (
		txRunner        ledger.TxRunner
		reader          ledger.Repos
		productRepo     repository.ProductRepository
		counterpartRepo repository.CounterpartRepository
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.New()
		store.SeedDemo(time.Now())
		txRunner = store
		reader = store.Repos()
		productRepo = store.Products()
		counterpartRepo = store.Counterparts()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				return fmt.Errorf("migraciones: %w", err)
			}
		}
		txRunner = postgres.NewTxRunner(pool)
		reader = postgres.Repos(pool)
		productRepo = postgres.NewProductRepository(pool)
		counterpartRepo = postgres.NewCounterpartRepository(pool)
	}

	// Bloqueo por documento: Redis si hay varias instancias, en proceso si no.
	var locker ledger.Locker
	if cfg.Redis.URL != "" {
		redisLocker, err := lock.NewRedis(ctx, cfg.Redis.URL, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second, log)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		defer redisLocker.Close()
		locker = redisLocker
	} else {
		locker = lock.NewLocal()
	}

	documentUC := ledger.NewDocumentUseCase(txRunner, productRepo, counterpartRepo, log)
	settlementUC := ledger.NewSettlementUseCase(txRunner, locker, log)
	cancellationUC := ledger.NewCancellationUseCase(txRunner, reader, locker, log)
	queryUC := ledger.NewQueryUseCase(reader)
	conversionUC := ledger.NewConversionUseCase(productRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café Henola - Libro de inventario",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents:    documentUC,
		Settlements:  settlementUC,
		Cancellation: cancellationUC,
		Queries:      queryUC,
		Conversion:   conversionUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
