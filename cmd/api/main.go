package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"rpvscraper/docs"
	"rpvscraper/internal/config"
	"rpvscraper/internal/database"
	"rpvscraper/internal/database/migration"
	handlers "rpvscraper/internal/http/handler"
	"rpvscraper/internal/http/middleware"
	"rpvscraper/internal/otel"
	"rpvscraper/internal/repository/postgres"
	"rpvscraper/internal/service"
	"rpvscraper/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title						RPV Publications API
// @version					1.0
// @description				Read-only access to RPV records extracted from TJSP gazettes.
// @BasePath					/
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	if err := config.InitLogger(cfg.Log, cfg.Location()); err != nil {
		panic(err)
	}
	logger := zap.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("db_connect_failed", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		logger.Fatal("db_migration_failed", zap.Error(err))
	}

	// The archive is optional; a nil interface disables the source routes.
	var objStore storage.Storage
	if cfg.MinIO.Enabled {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			logger.Fatal("storage_init_failed", zap.Error(err))
		}
	}

	repo := postgres.NewRecordPostgres(db, cfg.Extraction.BatchSize)
	svc := service.NewPublicationService(repo, objStore, cfg.PresignExpiry)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(logger),
	})

	// RequestID runs first so every later middleware sees the id.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, svc, reg)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_starting", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server_failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("server_stopping")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("server_shutdown_failed", zap.Error(err))
		}
	}
}
